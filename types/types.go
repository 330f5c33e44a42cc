package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MessageStatus represents the different states a cross-chain message can be in.
// The values are ordered: a withdrawal only ever moves forward through them.
type MessageStatus int

const (
	// UnconfirmedL1ToL2Message - Message is an L1 to L2 message and has not been processed by the L2
	UnconfirmedL1ToL2Message MessageStatus = iota

	// FailedL1ToL2Message - Message is an L1 to L2 message and the transaction to execute the message failed
	FailedL1ToL2Message

	// StateRootNotPublished - Message is an L2 to L1 message and no state root has been published yet
	StateRootNotPublished

	// ReadyToProve - Message is ready to be proved on L1 to initiate the challenge period
	ReadyToProve

	// InChallengePeriod - Message is a proved L2 to L1 message and is undergoing the challenge period
	InChallengePeriod

	// ReadyForRelay - Message is ready to be relayed
	ReadyForRelay

	// Relayed - Message has been relayed
	Relayed
)

var statusNames = [...]string{
	UnconfirmedL1ToL2Message: "UNCONFIRMED_L1_TO_L2_MESSAGE",
	FailedL1ToL2Message:      "FAILED_L1_TO_L2_MESSAGE",
	StateRootNotPublished:    "STATE_ROOT_NOT_PUBLISHED",
	ReadyToProve:             "READY_TO_PROVE",
	InChallengePeriod:        "IN_CHALLENGE_PERIOD",
	ReadyForRelay:            "READY_FOR_RELAY",
	Relayed:                  "RELAYED",
}

func (s MessageStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("MessageStatus(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether no further transition is expected. A failed
// deposit is not terminal: anyone can replay it on L2.
func (s MessageStatus) Terminal() bool {
	return s == Relayed
}

// ParseMessageStatus accepts the canonical names case-insensitively. SENT is
// accepted as an alias for StateRootNotPublished.
func ParseMessageStatus(s string) (MessageStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "SENT" {
		return StateRootNotPublished, nil
	}
	for i, n := range statusNames {
		if n == name {
			return MessageStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown message status %q", s)
}

func (s MessageStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MessageStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseMessageStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s MessageStatus) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(s.String())
}

func (s *MessageStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var name string
	if err := bson.UnmarshalValue(t, data, &name); err != nil {
		return err
	}
	parsed, err := ParseMessageStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MessageDirection is the direction a cross-chain message travels.
type MessageDirection int

const (
	L1ToL2 MessageDirection = iota
	L2ToL1
)

func (d MessageDirection) String() string {
	if d == L1ToL2 {
		return "L1_TO_L2"
	}
	return "L2_TO_L1"
}

// CrossChainMessage is a message sent through one of the cross domain messengers.
type CrossChainMessage struct {
	Direction    MessageDirection
	Sender       common.Address
	Target       common.Address
	Message      []byte
	MessageNonce *big.Int
	MntValue     *big.Int
	EthValue     *big.Int
	MinGasLimit  *big.Int

	// where the message was emitted
	TransactionHash common.Hash
	LogIndex        uint
	BlockNumber     uint64
}

// Withdrawal is the low level message stored in the L2ToL1MessagePasser.
type Withdrawal struct {
	Nonce    *big.Int
	Sender   common.Address
	Target   common.Address
	MntValue *big.Int
	EthValue *big.Int
	GasLimit *big.Int
	Data     []byte

	WithdrawalHash common.Hash
}

// TokenKind is the asset moved by a bridge transfer.
type TokenKind string

const (
	TokenETH    TokenKind = "ETH"
	TokenMNT    TokenKind = "MNT"
	TokenERC20  TokenKind = "ERC20"
	TokenERC721 TokenKind = "ERC721"
)

// TokenBridgeMessage describes a deposit or withdrawal initiated through one of the bridges.
type TokenBridgeMessage struct {
	Direction       MessageDirection
	Kind            TokenKind
	From            common.Address
	To              common.Address
	L1Token         common.Address
	L2Token         common.Address
	Amount          *big.Int
	Data            []byte
	TransactionHash common.Hash
	LogIndex        uint
	BlockNumber     uint64
}
