package transaction

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starkhash/core/felt"
)

var ErrUnsupportedTransactionVersion = errors.New("unsupported transaction version")

type Kind uint8

const (
	Invoke Kind = iota + 1
	Declare
	DeployAccount
	Deploy
	L1Handler
)

func (k Kind) String() string {
	switch k {
	case Invoke:
		return "INVOKE"
	case Declare:
		return "DECLARE"
	case DeployAccount:
		return "DEPLOY_ACCOUNT"
	case Deploy:
		return "DEPLOY"
	case L1Handler:
		return "L1_HANDLER"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

var (
	invokeFelt        = new(felt.Felt).SetBytes([]byte("invoke"))
	declareFelt       = new(felt.Felt).SetBytes([]byte("declare"))
	deployFelt        = new(felt.Felt).SetBytes([]byte("deploy"))
	deployAccountFelt = new(felt.Felt).SetBytes([]byte("deploy_account"))
	l1HandlerFelt     = new(felt.Felt).SetBytes([]byte("l1_handler"))
)

// prefix is the ASCII tag that opens the hash chain of every transaction of kind k.
func (k Kind) prefix() *felt.Felt {
	switch k {
	case Invoke:
		return invokeFelt
	case Declare:
		return declareFelt
	case DeployAccount:
		return deployAccountFelt
	case Deploy:
		return deployFelt
	case L1Handler:
		return l1HandlerFelt
	default:
		panic(fmt.Sprintf("unknown transaction kind %d", uint8(k)))
	}
}

// Transaction is implemented by exactly one struct per supported (kind, version) pair.
type Transaction interface {
	Kind() Kind
	Version() Version
	Signature() []*felt.Felt
}

var (
	_ Transaction = (*InvokeV0)(nil)
	_ Transaction = (*InvokeV1)(nil)
	_ Transaction = (*InvokeV3)(nil)
	_ Transaction = (*DeclareV0)(nil)
	_ Transaction = (*DeclareV1)(nil)
	_ Transaction = (*DeclareV2)(nil)
	_ Transaction = (*DeclareV3)(nil)
	_ Transaction = (*DeployAccountV1)(nil)
	_ Transaction = (*DeployAccountV3)(nil)
	_ Transaction = (*DeployV0)(nil)
	_ Transaction = (*DeployV1)(nil)
	_ Transaction = (*L1HandlerV0)(nil)
)

type InvokeV0 struct {
	// The address of the contract invoked by this transaction.
	ContractAddress *felt.Felt
	// The encoding of the selector for the function invoked (the entry point in the contract)
	EntryPointSelector *felt.Felt
	// The arguments that are passed to the validated and execute functions.
	CallData []*felt.Felt
	// The maximum fee that the sender is willing to pay for the transaction
	MaxFee *felt.Felt
	// Additional information given by the sender, used to validate the transaction.
	TransactionSignature []*felt.Felt
	// Hash with the query version, for simulation and fee estimation only.
	Query bool
}

func (i *InvokeV0) Kind() Kind              { return Invoke }
func (i *InvokeV0) Version() Version        { return Version{Number: 0, Query: i.Query} }
func (i *InvokeV0) Signature() []*felt.Felt { return i.TransactionSignature }

type InvokeV1 struct {
	// The address of the sender of this transaction
	SenderAddress *felt.Felt
	// The arguments that are passed to the validated and execute functions.
	CallData []*felt.Felt
	// The maximum fee that the sender is willing to pay for the transaction
	MaxFee *felt.Felt
	// The transaction nonce.
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
	Query                bool
}

func (i *InvokeV1) Kind() Kind              { return Invoke }
func (i *InvokeV1) Version() Version        { return Version{Number: 1, Query: i.Query} }
func (i *InvokeV1) Signature() []*felt.Felt { return i.TransactionSignature }

type InvokeV3 struct {
	SenderAddress *felt.Felt
	CallData      []*felt.Felt
	Nonce         *felt.Felt
	// Data needed to deploy the account contract from which this transaction is sent.
	AccountDeploymentData []*felt.Felt
	FeeMarket
	TransactionSignature []*felt.Felt
	Query                bool
}

func (i *InvokeV3) Kind() Kind              { return Invoke }
func (i *InvokeV3) Version() Version        { return Version{Number: 3, Query: i.Query} }
func (i *InvokeV3) Signature() []*felt.Felt { return i.TransactionSignature }

type DeclareV0 struct {
	// The address of the account initiating the transaction.
	SenderAddress *felt.Felt
	// The class hash
	ClassHash            *felt.Felt
	MaxFee               *felt.Felt
	TransactionSignature []*felt.Felt
	Query                bool
}

func (d *DeclareV0) Kind() Kind              { return Declare }
func (d *DeclareV0) Version() Version        { return Version{Number: 0, Query: d.Query} }
func (d *DeclareV0) Signature() []*felt.Felt { return d.TransactionSignature }

type DeclareV1 struct {
	SenderAddress        *felt.Felt
	ClassHash            *felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
	Query                bool
}

func (d *DeclareV1) Kind() Kind              { return Declare }
func (d *DeclareV1) Version() Version        { return Version{Number: 1, Query: d.Query} }
func (d *DeclareV1) Signature() []*felt.Felt { return d.TransactionSignature }

type DeclareV2 struct {
	SenderAddress *felt.Felt
	// The hash of the Sierra class.
	ClassHash *felt.Felt
	// The hash of the casm the Sierra class compiles to.
	CompiledClassHash    *felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
	Query                bool
}

func (d *DeclareV2) Kind() Kind              { return Declare }
func (d *DeclareV2) Version() Version        { return Version{Number: 2, Query: d.Query} }
func (d *DeclareV2) Signature() []*felt.Felt { return d.TransactionSignature }

type DeclareV3 struct {
	SenderAddress         *felt.Felt
	ClassHash             *felt.Felt
	CompiledClassHash     *felt.Felt
	Nonce                 *felt.Felt
	AccountDeploymentData []*felt.Felt
	FeeMarket
	TransactionSignature []*felt.Felt
	Query                bool
}

func (d *DeclareV3) Kind() Kind              { return Declare }
func (d *DeclareV3) Version() Version        { return Version{Number: 3, Query: d.Query} }
func (d *DeclareV3) Signature() []*felt.Felt { return d.TransactionSignature }

type DeployAccountV1 struct {
	// The address of the account contract. Derived from the class hash, salt and
	// constructor calldata when nil.
	ContractAddress *felt.Felt
	// The hash of the class which defines the contract’s functionality.
	ClassHash *felt.Felt
	// A random number used to distinguish between different instances of the contract.
	ContractAddressSalt *felt.Felt
	// The arguments passed to the constructor during deployment.
	ConstructorCallData  []*felt.Felt
	MaxFee               *felt.Felt
	Nonce                *felt.Felt
	TransactionSignature []*felt.Felt
	Query                bool
}

func (d *DeployAccountV1) Kind() Kind              { return DeployAccount }
func (d *DeployAccountV1) Version() Version        { return Version{Number: 1, Query: d.Query} }
func (d *DeployAccountV1) Signature() []*felt.Felt { return d.TransactionSignature }

type DeployAccountV3 struct {
	ContractAddress     *felt.Felt
	ClassHash           *felt.Felt
	ContractAddressSalt *felt.Felt
	ConstructorCallData []*felt.Felt
	Nonce               *felt.Felt
	FeeMarket
	TransactionSignature []*felt.Felt
	Query                bool
}

func (d *DeployAccountV3) Kind() Kind              { return DeployAccount }
func (d *DeployAccountV3) Version() Version        { return Version{Number: 3, Query: d.Query} }
func (d *DeployAccountV3) Signature() []*felt.Felt { return d.TransactionSignature }

// DeployV0 is a legacy deploy transaction. Deploy transactions carry no signature and
// have been rejected by the network since 0.10.0, they are hashed for history only.
type DeployV0 struct {
	ContractAddress     *felt.Felt
	ClassHash           *felt.Felt
	ContractAddressSalt *felt.Felt
	ConstructorCallData []*felt.Felt
}

func (d *DeployV0) Kind() Kind              { return Deploy }
func (d *DeployV0) Version() Version        { return Version{Number: 0} }
func (d *DeployV0) Signature() []*felt.Felt { return make([]*felt.Felt, 0) }

type DeployV1 struct {
	ContractAddress     *felt.Felt
	ClassHash           *felt.Felt
	ContractAddressSalt *felt.Felt
	ConstructorCallData []*felt.Felt
}

func (d *DeployV1) Kind() Kind              { return Deploy }
func (d *DeployV1) Version() Version        { return Version{Number: 1} }
func (d *DeployV1) Signature() []*felt.Felt { return make([]*felt.Felt, 0) }

type L1HandlerV0 struct {
	// The address of the contract.
	ContractAddress *felt.Felt
	// The encoding of the selector for the function invoked (the entry point in the contract)
	EntryPointSelector *felt.Felt
	// The L1 sender address followed by the message payload.
	CallData []*felt.Felt
	// The nonce of the message in the core contract.
	Nonce *felt.Felt
}

func (l *L1HandlerV0) Kind() Kind              { return L1Handler }
func (l *L1HandlerV0) Version() Version        { return Version{Number: 0} }
func (l *L1HandlerV0) Signature() []*felt.Felt { return make([]*felt.Felt, 0) }
