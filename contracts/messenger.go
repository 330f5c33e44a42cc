package contracts

import "github.com/lmittmann/w3"

// CrossDomainMessenger (L1 and L2)
var (
	SuccessfulMessages = w3.MustNewFunc("successfulMessages(bytes32)", "bool")
	FailedMessages     = w3.MustNewFunc("failedMessages(bytes32)", "bool")

	// L1 only
	MessengerPortal = w3.MustNewFunc("PORTAL()", "address")

	SentMessage           = w3.MustNewEvent("SentMessage(address indexed target, address sender, bytes message, uint256 messageNonce, uint256 gasLimit)")
	SentMessageExtension1 = w3.MustNewEvent("SentMessageExtension1(address indexed sender, uint256 mntValue, uint256 ethValue)")
	RelayedMessage        = w3.MustNewEvent("RelayedMessage(bytes32 indexed msgHash)")
	FailedRelayedMessage  = w3.MustNewEvent("FailedRelayedMessage(bytes32 indexed msgHash)")
)

// L2ToL1MessagePasser
var (
	MessagePassed = w3.MustNewEvent("MessagePassed(uint256 indexed nonce, address indexed sender, address indexed target, uint256 mntValue, uint256 ethValue, uint256 gasLimit, bytes data, bytes32 withdrawalHash)")
)
