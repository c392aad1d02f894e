package entity

// Balance represents the amount of a specific tracked token held by a wallet,
// annotated with its USD value after the valuation join.
type Balance struct {
	Address  string  `json:"address"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals uint8   `json:"decimals"`
	Amount   float64 `json:"amount"`
	UsdValue float64 `json:"usdValue"`
}
