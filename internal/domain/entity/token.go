package entity

// Token is a single entry of a network's token catalog. Immutable once
// fetched; Address is unique within one network's list.
type Token struct {
	Address  string `json:"address" yaml:"address"`
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
	ChainID  int64  `json:"chainId" yaml:"chainId"`
}
