package contracts

import "github.com/lmittmann/w3"

// GasPriceOracle
var (
	GetL1Fee     = w3.MustNewFunc("getL1Fee(bytes _data)", "uint256")
	GetL1GasUsed = w3.MustNewFunc("getL1GasUsed(bytes _data)", "uint256")
	GasPrice     = w3.MustNewFunc("gasPrice()", "uint256")
	L1BaseFee    = w3.MustNewFunc("l1BaseFee()", "uint256")
	TokenRatio   = w3.MustNewFunc("tokenRatio()", "uint256")
)
