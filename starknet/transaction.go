package starknet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/core/transaction"
	"github.com/NethermindEth/starkhash/validator"
)

var ErrMissingField = errors.New("missing transaction field")

type TransactionType uint8

const (
	Invalid TransactionType = iota
	TxnDeclare
	TxnDeploy
	TxnDeployAccount
	TxnInvoke
	TxnL1Handler
)

func (t TransactionType) String() string {
	switch t {
	case TxnDeclare:
		return "DECLARE"
	case TxnDeploy:
		return "DEPLOY"
	case TxnDeployAccount:
		return "DEPLOY_ACCOUNT"
	case TxnInvoke:
		return "INVOKE_FUNCTION"
	case TxnL1Handler:
		return "L1_HANDLER"
	default:
		return "<unknown>"
	}
}

func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TransactionType) UnmarshalText(data []byte) error {
	switch str := string(data); str {
	case "DECLARE":
		*t = TxnDeclare
	case "DEPLOY":
		*t = TxnDeploy
	case "DEPLOY_ACCOUNT":
		*t = TxnDeployAccount
	case "INVOKE", "INVOKE_FUNCTION":
		*t = TxnInvoke
	case "L1_HANDLER":
		*t = TxnL1Handler
	default:
		return fmt.Errorf("unknown TransactionType %q", str)
	}
	return nil
}

type Resource uint32

const (
	ResourceL1Gas Resource = iota + 1
	ResourceL2Gas
	ResourceL1DataGas
)

func (r *Resource) UnmarshalJSON(data []byte) error {
	return r.UnmarshalText(bytes.Trim(data, `"`))
}

func (r *Resource) UnmarshalText(text []byte) error {
	switch string(text) {
	case "L1_GAS":
		*r = ResourceL1Gas
	case "L1_DATA_GAS":
		*r = ResourceL1DataGas
	case "L2_GAS":
		*r = ResourceL2Gas
	default:
		return fmt.Errorf("unknown resource: %q", string(text))
	}
	return nil
}

func (r Resource) MarshalText() ([]byte, error) {
	switch r {
	case ResourceL1Gas:
		return []byte("L1_GAS"), nil
	case ResourceL1DataGas:
		return []byte("L1_DATA_GAS"), nil
	case ResourceL2Gas:
		return []byte("L2_GAS"), nil
	default:
		return nil, errors.New("unknown resource")
	}
}

type DataAvailabilityMode uint32

const (
	DAModeL1 DataAvailabilityMode = iota
	DAModeL2
)

// UnmarshalJSON accepts the feeder gateway form (0, 1) and the JSON-RPC form ("L1", "L2").
func (m *DataAvailabilityMode) UnmarshalJSON(data []byte) error {
	switch str := string(bytes.Trim(data, `"`)); str {
	case "0", "L1":
		*m = DAModeL1
	case "1", "L2":
		*m = DAModeL2
	default:
		return fmt.Errorf("unknown DataAvailabilityMode %q", str)
	}
	return nil
}

func (m DataAvailabilityMode) MarshalJSON() ([]byte, error) {
	switch m {
	case DAModeL1:
		return []byte(`"L1"`), nil
	case DAModeL2:
		return []byte(`"L2"`), nil
	default:
		return nil, errors.New("unknown DataAvailabilityMode")
	}
}

type ResourceBounds struct {
	MaxAmount       *felt.Felt `json:"max_amount" validate:"required,felt_u64"`
	MaxPricePerUnit *felt.Felt `json:"max_price_per_unit" validate:"required,felt_u128"`
}

// Transaction is the JSON shape of a transaction as served by the feeder gateway and the
// JSON-RPC API. It is a superset of every variant: which fields are required depends on the
// type and version.
type Transaction struct {
	Hash                  *felt.Felt                  `json:"transaction_hash,omitempty"`
	Version               *felt.Felt                  `json:"version,omitempty" validate:"required"`
	ContractAddress       *felt.Felt                  `json:"contract_address,omitempty"`
	ContractAddressSalt   *felt.Felt                  `json:"contract_address_salt,omitempty"`
	ClassHash             *felt.Felt                  `json:"class_hash,omitempty"`
	ConstructorCallData   *[]*felt.Felt               `json:"constructor_calldata,omitempty"`
	Type                  TransactionType             `json:"type,omitempty" validate:"required"`
	SenderAddress         *felt.Felt                  `json:"sender_address,omitempty"`
	MaxFee                *felt.Felt                  `json:"max_fee,omitempty"`
	Signature             *[]*felt.Felt               `json:"signature,omitempty"`
	CallData              *[]*felt.Felt               `json:"calldata,omitempty"`
	EntryPointSelector    *felt.Felt                  `json:"entry_point_selector,omitempty"`
	Nonce                 *felt.Felt                  `json:"nonce,omitempty"`
	CompiledClassHash     *felt.Felt                  `json:"compiled_class_hash,omitempty"`
	ResourceBounds        map[Resource]ResourceBounds `json:"resource_bounds,omitempty" validate:"omitempty,dive"`
	Tip                   *felt.Felt                  `json:"tip,omitempty" validate:"omitempty,felt_u64"`
	NonceDAMode           *DataAvailabilityMode       `json:"nonce_data_availability_mode,omitempty"`
	FeeDAMode             *DataAvailabilityMode       `json:"fee_data_availability_mode,omitempty"`
	AccountDeploymentData *[]*felt.Felt               `json:"account_deployment_data,omitempty"`
	PaymasterData         *[]*felt.Felt               `json:"paymaster_data,omitempty"`
}

type variant struct {
	txType  TransactionType
	version uint8
}

var (
	legacyInvokeFields  = []string{"ContractAddress", "EntryPointSelector", "CallData"}
	invokeFields        = []string{"SenderAddress", "CallData", "Nonce"}
	declareFields       = []string{"SenderAddress", "ClassHash"}
	deployAccountFields = []string{"ClassHash", "ContractAddressSalt", "ConstructorCallData"}
	deployFields        = []string{"ClassHash", "ContractAddressSalt", "ConstructorCallData"}
	v3Fields            = []string{"ResourceBounds"}
)

// requiredFields lists, per supported variant, the fields without which its hash cannot
// be computed. MaxFee and Nonce of legacy transactions default to zero.
var requiredFields = map[variant][]string{
	{TxnInvoke, 0}:        legacyInvokeFields,
	{TxnInvoke, 1}:        invokeFields,
	{TxnInvoke, 3}:        concat(invokeFields, v3Fields),
	{TxnDeclare, 0}:       declareFields,
	{TxnDeclare, 1}:       declareFields,
	{TxnDeclare, 2}:       concat(declareFields, []string{"CompiledClassHash"}),
	{TxnDeclare, 3}:       concat(declareFields, []string{"CompiledClassHash", "Nonce"}, v3Fields),
	{TxnDeployAccount, 1}: deployAccountFields,
	{TxnDeployAccount, 3}: concat(deployAccountFields, []string{"Nonce"}, v3Fields),
	{TxnDeploy, 0}:        deployFields,
	{TxnDeploy, 1}:        deployFields,
	{TxnL1Handler, 0}:     legacyInvokeFields,
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// ParseTransaction decodes and validates a single transaction.
func ParseTransaction(data []byte) (*Transaction, error) {
	t := new(Transaction)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the field formats, then that the fields of the transaction's
// (type, version) variant are present.
func (t *Transaction) Validate() error {
	if err := validator.Validator().Struct(t); err != nil {
		return err
	}

	version, err := transaction.ParseVersion(t.Version)
	if err != nil {
		return err
	}
	fields, ok := requiredFields[variant{t.Type, version.Number}]
	if !ok {
		return fmt.Errorf("%w: %s v%d", transaction.ErrUnsupportedTransactionVersion, t.Type, version.Number)
	}

	value := reflect.ValueOf(t).Elem()
	for _, name := range fields {
		if value.FieldByName(name).IsNil() {
			field, _ := value.Type().FieldByName(name)
			jsonName, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			return fmt.Errorf("%w: %s v%d requires %s", ErrMissingField, t.Type, version.Number, jsonName)
		}
	}
	return nil
}
