package contracts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTopics(t *testing.T) {
	tests := map[string]common.Hash{
		"SentMessage(address,address,bytes,uint256,uint256)":                             SentMessage.Topic0,
		"SentMessageExtension1(address,uint256,uint256)":                                 SentMessageExtension1.Topic0,
		"MessagePassed(uint256,address,address,uint256,uint256,uint256,bytes,bytes32)":   MessagePassed.Topic0,
		"ETHBridgeInitiated(address,address,uint256,bytes)":                              ETHBridgeInitiated.Topic0,
		"ERC20BridgeInitiated(address,address,address,address,uint256,bytes)":            ERC20BridgeInitiated.Topic0,
		"WithdrawalProven(bytes32,address,address)":                                      WithdrawalProven.Topic0,
		"Transfer(address,address,uint256)":                                              ERC721Transfer.Topic0,
		"OptimismMintableERC20Created(address,address,address)":                          OptimismMintableERC20Created.Topic0,
	}
	for sig, topic := range tests {
		assert.Equal(t, crypto.Keccak256Hash([]byte(sig)), topic, sig)
	}
}

func TestFinalizeWithdrawalCalldata(t *testing.T) {
	tx := WithdrawalTransaction{
		Nonce:    big.NewInt(1),
		Sender:   L2CrossDomainMessengerAddr,
		Target:   common.HexToAddress("0xc48078a734c2e22D43F54B47F7a8fB314Fa5A601"),
		MntValue: big.NewInt(0),
		EthValue: big.NewInt(5),
		GasLimit: big.NewInt(100000),
		Data:     []byte{0xde, 0xad},
	}
	data, err := FinalizeWithdrawalTransaction.EncodeArgs(tx)
	require.NoError(t, err)

	selector := crypto.Keccak256([]byte("finalizeWithdrawalTransaction((uint256,address,address,uint256,uint256,uint256,bytes))"))[:4]
	assert.Equal(t, selector, data[:4])
	// offset word, then the 7 tuple words, then the bytes length and the padded payload
	assert.Len(t, data, 4+32*(1+7+2))
}
