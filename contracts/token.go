package contracts

import "github.com/lmittmann/w3"

// ERC20 and the test tokens deployed by the demos.
var (
	BalanceOf = w3.MustNewFunc("balanceOf(address)", "uint256")
	Allowance = w3.MustNewFunc("allowance(address owner, address spender)", "uint256")
	Approve   = w3.MustNewFunc("approve(address spender, uint256 amount)", "bool")
	Symbol    = w3.MustNewFunc("symbol()", "string")
	Decimals  = w3.MustNewFunc("decimals()", "uint8")
	Mint      = w3.MustNewFunc("mint(address to, uint256 amount)", "")
	Faucet    = w3.MustNewFunc("faucet()", "")
)

// ERC721
var (
	IsApprovedForAll  = w3.MustNewFunc("isApprovedForAll(address owner, address operator)", "bool")
	SetApprovalForAll = w3.MustNewFunc("setApprovalForAll(address operator, bool approved)", "")
	AwardItem         = w3.MustNewFunc("awardItem(address player, string tokenURI)", "uint256")

	ERC721Transfer = w3.MustNewEvent("Transfer(address indexed from, address indexed to, uint256 indexed tokenId)")
)

// Token factories
var (
	CreateOptimismMintableERC20  = w3.MustNewFunc("createOptimismMintableERC20(address _remoteToken, string _name, string _symbol)", "address")
	CreateStandardL2Token        = w3.MustNewFunc("createStandardL2Token(address _remoteToken, string _name, string _symbol)", "address")
	CreateOptimismMintableERC721 = w3.MustNewFunc("createOptimismMintableERC721(address _remoteToken, string _name, string _symbol)", "address")

	OptimismMintableERC20Created  = w3.MustNewEvent("OptimismMintableERC20Created(address indexed localToken, address indexed remoteToken, address deployer)")
	StandardL2TokenCreated        = w3.MustNewEvent("StandardL2TokenCreated(address indexed remoteToken, address indexed localToken)")
	OptimismMintableERC721Created = w3.MustNewEvent("OptimismMintableERC721Created(address indexed localToken, address indexed remoteToken, address deployer)")
)

// Greeter contracts used by the messaging demo
var (
	Greet       = w3.MustNewFunc("greet()", "string")
	SetGreeting = w3.MustNewFunc("setGreeting(string _greeting)", "")
)
