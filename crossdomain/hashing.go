// Package crossdomain computes the hashes the messengers and the portal use to
// identify cross domain messages and withdrawals.
package crossdomain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lmittmann/w3"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

var (
	relayMessageV0 = w3.MustNewFunc("relayMessage(address _target, address _sender, bytes _message, uint256 _messageNonce)", "")
	relayMessageV1 = w3.MustNewFunc("relayMessage(uint256 _nonce, address _sender, address _target, uint256 _mntValue, uint256 _ethValue, uint256 _minGasLimit, bytes _message)", "")

	uint256Type, _ = abi.NewType("uint256", "", nil)
	addressType, _ = abi.NewType("address", "", nil)
	bytesType, _   = abi.NewType("bytes", "", nil)

	withdrawalArgs = abi.Arguments{
		{Name: "nonce", Type: uint256Type},
		{Name: "sender", Type: addressType},
		{Name: "target", Type: addressType},
		{Name: "mntValue", Type: uint256Type},
		{Name: "ethValue", Type: uint256Type},
		{Name: "gasLimit", Type: uint256Type},
		{Name: "data", Type: bytesType},
	}
)

var versionMask = new(big.Int).Lsh(big.NewInt(0xffff), 240)

// EncodeVersionedNonce packs the message version into the top two bytes of the nonce.
func EncodeVersionedNonce(nonce, version *big.Int) *big.Int {
	shifted := new(big.Int).Lsh(version, 240)
	return new(big.Int).Or(nonce, shifted)
}

// DecodeVersionedNonce splits a versioned nonce into nonce and version.
func DecodeVersionedNonce(versioned *big.Int) (nonce, version *big.Int) {
	version = new(big.Int).Rsh(versioned, 240)
	nonce = new(big.Int).AndNot(versioned, versionMask)
	return nonce, version
}

// EncodeCrossDomainMessageV0 is the legacy relayMessage calldata.
func EncodeCrossDomainMessageV0(target, sender common.Address, data []byte, nonce *big.Int) ([]byte, error) {
	return relayMessageV0.EncodeArgs(target, sender, data, nonce)
}

// EncodeCrossDomainMessageV1 is the bedrock relayMessage calldata.
func EncodeCrossDomainMessageV1(nonce *big.Int, sender, target common.Address, mntValue, ethValue, gasLimit *big.Int, data []byte) ([]byte, error) {
	return relayMessageV1.EncodeArgs(nonce, sender, target, mntValue, ethValue, gasLimit, data)
}

// HashCrossDomainMessage returns the hash stored in successfulMessages/failedMessages
// once the message has been relayed.
func HashCrossDomainMessage(msg *types.CrossChainMessage) (common.Hash, error) {
	_, version := DecodeVersionedNonce(msg.MessageNonce)

	var (
		encoded []byte
		err     error
	)
	switch version.Uint64() {
	case 0:
		encoded, err = EncodeCrossDomainMessageV0(msg.Target, msg.Sender, msg.Message, msg.MessageNonce)
	case 1:
		encoded, err = EncodeCrossDomainMessageV1(msg.MessageNonce, msg.Sender, msg.Target, orZero(msg.MntValue), orZero(msg.EthValue), orZero(msg.MinGasLimit), msg.Message)
	default:
		return common.Hash{}, fmt.Errorf("unknown cross domain message version %d", version)
	}
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode cross domain message: %w", err)
	}

	return crypto.Keccak256Hash(encoded), nil
}

// HashWithdrawal returns the hash the L2ToL1MessagePasser and the portal key a withdrawal by.
func HashWithdrawal(w *types.Withdrawal) (common.Hash, error) {
	encoded, err := withdrawalArgs.Pack(w.Nonce, w.Sender, w.Target, orZero(w.MntValue), orZero(w.EthValue), w.GasLimit, w.Data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode withdrawal: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// StorageSlotOfWithdrawalHash is the sentMessages slot of the message passer that
// records the withdrawal.
func StorageSlotOfWithdrawalHash(hash common.Hash) common.Hash {
	buf := make([]byte, 64)
	copy(buf, hash.Bytes())
	return crypto.Keccak256Hash(buf)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
