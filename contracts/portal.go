package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

// WithdrawalTransaction mirrors Types.WithdrawalTransaction on Mantle.
type WithdrawalTransaction struct {
	Nonce    *big.Int
	Sender   common.Address
	Target   common.Address
	MntValue *big.Int
	EthValue *big.Int
	GasLimit *big.Int
	Data     []byte
}

// OutputRootProof mirrors Types.OutputRootProof.
type OutputRootProof struct {
	Version                  [32]byte
	StateRoot                [32]byte
	MessagePasserStorageRoot [32]byte
	LatestBlockhash          [32]byte
}

// OutputProposal mirrors Types.OutputProposal.
type OutputProposal struct {
	OutputRoot    [32]byte
	Timestamp     *big.Int
	L2BlockNumber *big.Int
}

const withdrawalTuple = "(uint256 Nonce, address Sender, address Target, uint256 MntValue, uint256 EthValue, uint256 GasLimit, bytes Data)"

// OptimismPortal
var (
	ProveWithdrawalTransaction = w3.MustNewFunc("proveWithdrawalTransaction("+
		withdrawalTuple+" _tx,"+
		"uint256 _l2OutputIndex,"+
		"(bytes32 Version, bytes32 StateRoot, bytes32 MessagePasserStorageRoot, bytes32 LatestBlockhash) _outputRootProof,"+
		"bytes[] _withdrawalProof)", "")
	FinalizeWithdrawalTransaction = w3.MustNewFunc("finalizeWithdrawalTransaction("+withdrawalTuple+" _tx)", "")
	ProvenWithdrawals             = w3.MustNewFunc("provenWithdrawals(bytes32)", "bytes32 outputRoot, uint128 timestamp, uint128 l2OutputIndex")
	FinalizedWithdrawals          = w3.MustNewFunc("finalizedWithdrawals(bytes32)", "bool")
	PortalL2Oracle                = w3.MustNewFunc("L2_ORACLE()", "address")

	WithdrawalProven    = w3.MustNewEvent("WithdrawalProven(bytes32 indexed withdrawalHash, address indexed from, address indexed to)")
	WithdrawalFinalized = w3.MustNewEvent("WithdrawalFinalized(bytes32 indexed withdrawalHash, bool success)")
)

// L2OutputOracle
var (
	LatestBlockNumber         = w3.MustNewFunc("latestBlockNumber()", "uint256")
	GetL2OutputIndexAfter     = w3.MustNewFunc("getL2OutputIndexAfter(uint256 _l2BlockNumber)", "uint256")
	GetL2Output               = w3.MustNewFunc("getL2Output(uint256 _l2OutputIndex)", "(bytes32 OutputRoot, uint128 Timestamp, uint128 L2BlockNumber)")
	FinalizationPeriodSeconds = w3.MustNewFunc("FINALIZATION_PERIOD_SECONDS()", "uint256")
)
