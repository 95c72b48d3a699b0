package sn2core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NethermindEth/starkhash/core/class"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/core/transaction"
	"github.com/NethermindEth/starkhash/starknet"
	"github.com/NethermindEth/starkhash/utils"
)

var ErrQueryNotSupported = errors.New("transaction type has no query version")

// AdaptTransaction maps a validated wire transaction onto the core variant of its
// (type, version) pair.
func AdaptTransaction(t *starknet.Transaction) (transaction.Transaction, error) {
	if t == nil {
		return nil, errors.New("nil transaction")
	}
	if t.Version == nil {
		return nil, fmt.Errorf("%w: version", starknet.ErrMissingField)
	}
	version, err := transaction.ParseVersion(t.Version)
	if err != nil {
		return nil, err
	}

	switch t.Type {
	case starknet.TxnInvoke:
		return adaptInvoke(t, version)
	case starknet.TxnDeclare:
		return adaptDeclare(t, version)
	case starknet.TxnDeployAccount:
		return adaptDeployAccount(t, version)
	case starknet.TxnDeploy:
		return adaptDeploy(t, version)
	case starknet.TxnL1Handler:
		return adaptL1Handler(t, version)
	default:
		return nil, fmt.Errorf("unknown transaction type %q", t.Type)
	}
}

func unsupported(t *starknet.Transaction, v transaction.Version) error {
	return fmt.Errorf("%w: %s v%s", transaction.ErrUnsupportedTransactionVersion, t.Type, v)
}

func values(list *[]*felt.Felt) []*felt.Felt {
	if list == nil {
		return []*felt.Felt{}
	}
	return *list
}

func adaptInvoke(t *starknet.Transaction, v transaction.Version) (transaction.Transaction, error) {
	switch v.Number {
	case 0:
		return &transaction.InvokeV0{
			ContractAddress:      t.ContractAddress,
			EntryPointSelector:   t.EntryPointSelector,
			CallData:             values(t.CallData),
			MaxFee:               t.MaxFee,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	case 1:
		return &transaction.InvokeV1{
			SenderAddress:        t.SenderAddress,
			CallData:             values(t.CallData),
			MaxFee:               t.MaxFee,
			Nonce:                t.Nonce,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	case 3:
		fm, err := adaptFeeMarket(t)
		if err != nil {
			return nil, err
		}
		return &transaction.InvokeV3{
			SenderAddress:         t.SenderAddress,
			CallData:              values(t.CallData),
			Nonce:                 t.Nonce,
			AccountDeploymentData: values(t.AccountDeploymentData),
			FeeMarket:             fm,
			TransactionSignature:  values(t.Signature),
			Query:                 v.Query,
		}, nil
	default:
		return nil, unsupported(t, v)
	}
}

func adaptDeclare(t *starknet.Transaction, v transaction.Version) (transaction.Transaction, error) {
	switch v.Number {
	case 0:
		return &transaction.DeclareV0{
			SenderAddress:        t.SenderAddress,
			ClassHash:            t.ClassHash,
			MaxFee:               t.MaxFee,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	case 1:
		return &transaction.DeclareV1{
			SenderAddress:        t.SenderAddress,
			ClassHash:            t.ClassHash,
			MaxFee:               t.MaxFee,
			Nonce:                t.Nonce,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	case 2:
		return &transaction.DeclareV2{
			SenderAddress:        t.SenderAddress,
			ClassHash:            t.ClassHash,
			CompiledClassHash:    t.CompiledClassHash,
			MaxFee:               t.MaxFee,
			Nonce:                t.Nonce,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	case 3:
		fm, err := adaptFeeMarket(t)
		if err != nil {
			return nil, err
		}
		return &transaction.DeclareV3{
			SenderAddress:         t.SenderAddress,
			ClassHash:             t.ClassHash,
			CompiledClassHash:     t.CompiledClassHash,
			Nonce:                 t.Nonce,
			AccountDeploymentData: values(t.AccountDeploymentData),
			FeeMarket:             fm,
			TransactionSignature:  values(t.Signature),
			Query:                 v.Query,
		}, nil
	default:
		return nil, unsupported(t, v)
	}
}

func adaptDeployAccount(t *starknet.Transaction, v transaction.Version) (transaction.Transaction, error) {
	switch v.Number {
	case 1:
		return &transaction.DeployAccountV1{
			ContractAddress:      t.ContractAddress,
			ClassHash:            t.ClassHash,
			ContractAddressSalt:  t.ContractAddressSalt,
			ConstructorCallData:  values(t.ConstructorCallData),
			MaxFee:               t.MaxFee,
			Nonce:                t.Nonce,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	case 3:
		fm, err := adaptFeeMarket(t)
		if err != nil {
			return nil, err
		}
		return &transaction.DeployAccountV3{
			ContractAddress:      t.ContractAddress,
			ClassHash:            t.ClassHash,
			ContractAddressSalt:  t.ContractAddressSalt,
			ConstructorCallData:  values(t.ConstructorCallData),
			Nonce:                t.Nonce,
			FeeMarket:            fm,
			TransactionSignature: values(t.Signature),
			Query:                v.Query,
		}, nil
	default:
		return nil, unsupported(t, v)
	}
}

func adaptDeploy(t *starknet.Transaction, v transaction.Version) (transaction.Transaction, error) {
	if v.Query {
		return nil, fmt.Errorf("%w: %s", ErrQueryNotSupported, t.Type)
	}
	switch v.Number {
	case 0:
		return &transaction.DeployV0{
			ContractAddress:     t.ContractAddress,
			ClassHash:           t.ClassHash,
			ContractAddressSalt: t.ContractAddressSalt,
			ConstructorCallData: values(t.ConstructorCallData),
		}, nil
	case 1:
		return &transaction.DeployV1{
			ContractAddress:     t.ContractAddress,
			ClassHash:           t.ClassHash,
			ContractAddressSalt: t.ContractAddressSalt,
			ConstructorCallData: values(t.ConstructorCallData),
		}, nil
	default:
		return nil, unsupported(t, v)
	}
}

func adaptL1Handler(t *starknet.Transaction, v transaction.Version) (transaction.Transaction, error) {
	if v.Query {
		return nil, fmt.Errorf("%w: %s", ErrQueryNotSupported, t.Type)
	}
	if v.Number != 0 {
		return nil, unsupported(t, v)
	}
	return &transaction.L1HandlerV0{
		ContractAddress:    t.ContractAddress,
		EntryPointSelector: t.EntryPointSelector,
		CallData:           values(t.CallData),
		Nonce:              t.Nonce,
	}, nil
}

func adaptFeeMarket(t *starknet.Transaction) (transaction.FeeMarket, error) {
	var (
		fm  transaction.FeeMarket
		err error
	)

	for _, r := range []starknet.Resource{starknet.ResourceL1Gas, starknet.ResourceL2Gas} {
		if _, ok := t.ResourceBounds[r]; !ok {
			name, _ := r.MarshalText()
			return fm, fmt.Errorf("%w: resource_bounds.%s", starknet.ErrMissingField, name)
		}
	}
	if fm.ResourceBounds.L1Gas, err = adaptResourceBounds(t.ResourceBounds[starknet.ResourceL1Gas]); err != nil {
		return fm, err
	}
	if fm.ResourceBounds.L2Gas, err = adaptResourceBounds(t.ResourceBounds[starknet.ResourceL2Gas]); err != nil {
		return fm, err
	}
	if rb, ok := t.ResourceBounds[starknet.ResourceL1DataGas]; ok {
		l1DataGas, err := adaptResourceBounds(rb)
		if err != nil {
			return fm, err
		}
		fm.ResourceBounds.L1DataGas = &l1DataGas
	}

	if t.Tip != nil {
		if fm.Tip, err = felt.Uint64FromFelt(*t.Tip); err != nil {
			return fm, fmt.Errorf("tip: %w", err)
		}
	}
	fm.PaymasterData = values(t.PaymasterData)
	if t.NonceDAMode != nil {
		fm.NonceDAMode = transaction.DataAvailabilityMode(*t.NonceDAMode)
	}
	if t.FeeDAMode != nil {
		fm.FeeDAMode = transaction.DataAvailabilityMode(*t.FeeDAMode)
	}
	return fm, nil
}

func adaptResourceBounds(rb starknet.ResourceBounds) (transaction.ResourceBounds, error) {
	var bounds transaction.ResourceBounds
	if rb.MaxAmount == nil || rb.MaxPricePerUnit == nil {
		return bounds, fmt.Errorf("%w: resource bounds", starknet.ErrMissingField)
	}

	amount, err := rb.MaxAmount.Uint64()
	if err != nil {
		return bounds, fmt.Errorf("max_amount: %w", err)
	}
	price, err := felt.Uint128FromFelt(*rb.MaxPricePerUnit)
	if err != nil {
		return bounds, fmt.Errorf("max_price_per_unit: %w", err)
	}
	bounds.MaxAmount = amount
	bounds.MaxPricePerUnit = price
	return bounds, nil
}

func AdaptSierraClass(response *starknet.SierraClass) *class.SierraClass {
	return &class.SierraClass{
		Abi: response.Abi,
		EntryPoints: class.SierraEntryPoints{
			Constructor: adaptSierraEntryPoints(response.EntryPoints.Constructor),
			External:    adaptSierraEntryPoints(response.EntryPoints.External),
			L1Handler:   adaptSierraEntryPoints(response.EntryPoints.L1Handler),
		},
		Program:         response.Program,
		SemanticVersion: response.Version,
	}
}

func adaptSierraEntryPoints(entryPoints []starknet.SierraEntryPoint) []class.SierraEntryPoint {
	adapted := make([]class.SierraEntryPoint, len(entryPoints))
	for i, ep := range entryPoints {
		adapted[i] = class.SierraEntryPoint{Index: ep.Index, Selector: *ep.Selector}
	}
	return adapted
}

func AdaptCasmClass(response *starknet.CasmClass) *class.CasmClass {
	casm := &class.CasmClass{
		CompilerVersion: response.CompilerVersion,
		Prime:           response.Prime,
		Bytecode:        response.Bytecode,
		Hints:           response.Hints,
		EntryPoints: class.CompiledEntryPoints{
			External:    adaptCompiledEntryPoints(response.EntryPoints.External),
			L1Handler:   adaptCompiledEntryPoints(response.EntryPoints.L1Handler),
			Constructor: adaptCompiledEntryPoints(response.EntryPoints.Constructor),
		},
	}
	if response.BytecodeSegmentLengths != nil {
		segments := adaptSegmentLengths(*response.BytecodeSegmentLengths)
		casm.BytecodeSegmentLengths = &segments
	}
	return casm
}

func adaptCompiledEntryPoints(entryPoints []starknet.CompiledEntryPoint) []class.CompiledEntryPoint {
	adapted := make([]class.CompiledEntryPoint, len(entryPoints))
	for i, ep := range entryPoints {
		adapted[i] = class.CompiledEntryPoint{Selector: *ep.Selector, Offset: ep.Offset, Builtins: ep.Builtins}
	}
	return adapted
}

func adaptSegmentLengths(l starknet.SegmentLengths) class.SegmentLengths {
	if len(l.Children) == 0 {
		return class.SegmentLengths{Length: l.Length}
	}
	children := make([]class.SegmentLengths, len(l.Children))
	for i, child := range l.Children {
		children[i] = adaptSegmentLengths(child)
	}
	return class.SegmentLengths{Children: children}
}

// AdaptDeprecatedClass accepts the program both as a JSON object and as the gzipped,
// base64 encoded string served over JSON-RPC.
func AdaptDeprecatedClass(response *starknet.DeprecatedCairoClass) (*class.DeprecatedClass, error) {
	program := response.Program
	if trimmed := bytes.TrimSpace(program); len(trimmed) > 0 && trimmed[0] == '"' {
		var base64Program string
		if err := json.Unmarshal(trimmed, &base64Program); err != nil {
			return nil, err
		}
		var err error
		if program, err = utils.Gzip64Decode(base64Program); err != nil {
			return nil, fmt.Errorf("%w: %v", class.ErrInvalidProgram, err)
		}
	}

	return &class.DeprecatedClass{
		Abi:          response.Abi,
		Program:      program,
		Externals:    adaptEntryPoints(response.EntryPoints.External),
		L1Handlers:   adaptEntryPoints(response.EntryPoints.L1Handler),
		Constructors: adaptEntryPoints(response.EntryPoints.Constructor),
	}, nil
}

func adaptEntryPoints(entryPoints []starknet.EntryPoint) []class.EntryPoint {
	adapted := make([]class.EntryPoint, len(entryPoints))
	for i, ep := range entryPoints {
		adapted[i] = class.EntryPoint{Selector: *ep.Selector, Offset: *ep.Offset}
	}
	return adapted
}
