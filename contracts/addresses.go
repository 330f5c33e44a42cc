package contracts

import "github.com/ethereum/go-ethereum/common"

// L2 predeploys.
var (
	L2CrossDomainMessengerAddr        = common.HexToAddress("0x4200000000000000000000000000000000000007")
	GasPriceOracleAddr                = common.HexToAddress("0x420000000000000000000000000000000000000F")
	L2StandardBridgeAddr              = common.HexToAddress("0x4200000000000000000000000000000000000010")
	OptimismMintableERC20FactoryAddr  = common.HexToAddress("0x4200000000000000000000000000000000000012")
	L2ERC721BridgeAddr                = common.HexToAddress("0x4200000000000000000000000000000000000014")
	L2ToL1MessagePasserAddr           = common.HexToAddress("0x4200000000000000000000000000000000000016")
	OptimismMintableERC721FactoryAddr = common.HexToAddress("0x4200000000000000000000000000000000000017")
)

// Legacy L2 token addresses accepted by L2StandardBridge.withdraw.
var (
	// BVMETHAddr is the ERC20 representation of ETH on Mantle.
	BVMETHAddr = common.HexToAddress("0xdEAddEaDdeadDEadDEADDEAddEADDEAddead1111")
	// LegacyMNTAddr selects the native MNT withdrawal path.
	LegacyMNTAddr = common.HexToAddress("0xDeadDeAddeAddEAddeadDEaDDEAdDeaDDeAD0000")
)
