package contracts

import "github.com/lmittmann/w3"

// StandardBridge (L1StandardBridge / L2StandardBridge)
var (
	DepositETH   = w3.MustNewFunc("depositETH(uint32 _minGasLimit, bytes _extraData)", "")
	DepositMNT   = w3.MustNewFunc("depositMNT(uint256 _amount, uint32 _minGasLimit, bytes _extraData)", "")
	DepositERC20 = w3.MustNewFunc("depositERC20(address _l1Token, address _l2Token, uint256 _amount, uint32 _minGasLimit, bytes _extraData)", "")
	Withdraw     = w3.MustNewFunc("withdraw(address _l2Token, uint256 _amount, uint32 _minGasLimit, bytes _extraData)", "")

	ETHBridgeInitiated   = w3.MustNewEvent("ETHBridgeInitiated(address indexed from, address indexed to, uint256 amount, bytes extraData)")
	MNTBridgeInitiated   = w3.MustNewEvent("MNTBridgeInitiated(address indexed from, address indexed to, uint256 amount, bytes extraData)")
	ERC20BridgeInitiated = w3.MustNewEvent("ERC20BridgeInitiated(address indexed localToken, address indexed remoteToken, address indexed from, address to, uint256 amount, bytes extraData)")
)

// ERC721Bridge (L1ERC721Bridge / L2ERC721Bridge)
var (
	BridgeERC721 = w3.MustNewFunc("bridgeERC721(address _localToken, address _remoteToken, uint256 _tokenId, uint32 _minGasLimit, bytes _extraData)", "")

	ERC721BridgeInitiated = w3.MustNewEvent("ERC721BridgeInitiated(address indexed localToken, address indexed remoteToken, address indexed from, address to, uint256 tokenId, bytes extraData)")
)
