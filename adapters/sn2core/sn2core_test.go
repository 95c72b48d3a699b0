package sn2core_test

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/NethermindEth/starkhash/adapters/sn2core"
	"github.com/NethermindEth/starkhash/core/class"
	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/core/transaction"
	"github.com/NethermindEth/starkhash/starknet"
	"github.com/NethermindEth/starkhash/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var provider = crypto.MustNewStarkProvider()

const invokeV3 = `{
	"type": "INVOKE_FUNCTION",
	"version": "0x3",
	"sender_address": "0x3f6f3bc663aedc5285d6013cc3ffcbc4341d86ab488b8b68d297f8258793c41",
	"calldata": [
		"0x2",
		"0x4c312760dfd17a954cdd09e76aa9f149f806d88ec3e402ffaf5c4926f568a42",
		"0x31aafc75f498fdfa7528880ad27246b4c15af4954f96228c9a132b328de1c92",
		"0x0",
		"0x6",
		"0x450703c32370cf7ffff540b9352e7ee4ad583af143a361155f2b485c0c39684",
		"0xb17d8a2731ba7ca1816631e6be14f0fc1b8390422d649fa27f0fbb0c91eea8",
		"0x6",
		"0x0",
		"0x6",
		"0x6333f10b24ed58cc33e9bac40b0d52e067e32a175a97ca9e2ce89fe2b002d82",
		"0x3",
		"0x602e89fe5703e5b093d13d0a81c9e6d213338dc15c59f4d3ff3542d1d7dfb7d",
		"0x20d621301bea11ffd9108af1d65847e9049412159294d0883585d4ad43ad61b",
		"0x276faadb842bfcbba834f3af948386a2eb694f7006e118ad6c80305791d3247",
		"0x613816405e6334ab420e53d4b38a0451cb2ebca2755171315958c87d303cf6"
	],
	"nonce": "0x8a9",
	"signature": [],
	"resource_bounds": {
		"L1_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x5af3107a4000"},
		"L2_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x5af3107a4000"},
		"L1_DATA_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x5af3107a4000"}
	},
	"tip": "0x0",
	"paymaster_data": [],
	"account_deployment_data": [],
	"nonce_data_availability_mode": "L1",
	"fee_data_availability_mode": "L1"
}`

func TestAdaptTransactionHash(t *testing.T) {
	goerli := utils.Goerli.ChainID()

	tests := map[string]struct {
		json string
		want string
	}{
		"invoke v0": {
			json: `{"type": "INVOKE_FUNCTION", "version": "0x0", "contract_address": "0x2a",
				"entry_point_selector": "0x64", "calldata": [], "max_fee": "0x0"}`,
			want: "0x7d260744de9d8c55e7675a34512d1951a7b262c79e685d26599edd2948de959",
		},
		"invoke v1": {
			json: `{"type": "INVOKE_FUNCTION", "version": "0x1",
				"sender_address": "0x6352037a8acbb31095a8ed0f4aa8d8639e13b705b043a1b08f9640d2f9f0d56",
				"calldata": ["0x3e7", "0x378", "0x309"], "max_fee": "0xabcd987654210", "nonce": "0x2694"}`,
			want: "0x119b1a69e0c35b9035be945d3a1d551f2f78473b10311734fafb1f5df3f61d9",
		},
		"invoke v3": {
			json: invokeV3,
			want: "0x58bf19c9d19264cd2618fd4a9bebe75db59c0c865810986eb352723f6571648",
		},
		"deploy account v3": {
			json: `{"type": "DEPLOY_ACCOUNT", "version": "0x3",
				"class_hash": "0x2338634f11772ea342365abd5be9d9dc8a6f44f159ad782fdebd3db5d969738",
				"contract_address_salt": "0x0",
				"constructor_calldata": ["0x5cd65f3d7daea6c63939d659b8473ea0c5cd81576035a4d34e52fb06840196c"],
				"nonce": "0x0",
				"resource_bounds": {
					"L1_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x5af3107a4000"},
					"L2_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x5af3107a4000"},
		"L1_DATA_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x5af3107a4000"}
				},
				"nonce_data_availability_mode": 0, "fee_data_availability_mode": 0}`,
			want: "0xee682037ec979ab79b3cdb9dfca4f1088eef7cbb1aeadc9cb07b478805747e",
		},
		"declare v3": {
			json: `{"type": "DECLARE", "version": "0x3",
				"sender_address": "0x2fab82e4aef1d8664874e1f194951856d48463c3e6bf9a8c68e234a629a6f50",
				"class_hash": "0x5ae9d09292a50ed48c5930904c880dab56e85b825022a7d689cfc9e65e01ee7",
				"compiled_class_hash": "0x1add56d64bebf8140f3b8a38bdf102b7874437f0c861ab4ca7526ec33b4d0f8",
				"nonce": "0x1",
				"resource_bounds": {
					"L1_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x2540be400"},
					"L2_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x2540be400"},
		"L1_DATA_GAS": {"max_amount": "0x186a0", "max_price_per_unit": "0x2540be400"}
				}}`,
			want: "0x15e515947b30e7a5ca52e8a25451f6993736ca933867ec41d33d473aaa46959",
		},
	}

	calculator := transaction.NewCalculator(provider)
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			wire, err := starknet.ParseTransaction([]byte(test.json))
			require.NoError(t, err)

			tx, err := sn2core.AdaptTransaction(wire)
			require.NoError(t, err)

			got, err := calculator.Hash(tx, &goerli)
			require.NoError(t, err)
			assert.Equal(t, test.want, got.String())
		})
	}
}

func TestAdaptTransactionVariants(t *testing.T) {
	tests := map[string]struct {
		json string
		want transaction.Transaction
	}{
		"invoke v1 query": {
			json: `{"type": "INVOKE", "version": "0x100000000000000000000000000000001", "sender_address": "0x1",
				"calldata": ["0x2"], "nonce": "0x3"}`,
			want: &transaction.InvokeV1{
				SenderAddress:        utils.HexToFelt(t, "0x1"),
				CallData:             utils.HexArrToFelt(t, []string{"0x2"}),
				Nonce:                utils.HexToFelt(t, "0x3"),
				TransactionSignature: []*felt.Felt{},
				Query:                true,
			},
		},
		"declare v0": {
			json: `{"type": "DECLARE", "version": "0x0", "sender_address": "0x1", "class_hash": "0x2",
				"max_fee": "0x3", "signature": ["0x4"]}`,
			want: &transaction.DeclareV0{
				SenderAddress:        utils.HexToFelt(t, "0x1"),
				ClassHash:            utils.HexToFelt(t, "0x2"),
				MaxFee:               utils.HexToFelt(t, "0x3"),
				TransactionSignature: utils.HexArrToFelt(t, []string{"0x4"}),
			},
		},
		"deploy v1": {
			json: `{"type": "DEPLOY", "version": "0x1", "contract_address": "0x9", "class_hash": "0x2",
				"contract_address_salt": "0x3", "constructor_calldata": ["0x4"]}`,
			want: &transaction.DeployV1{
				ContractAddress:     utils.HexToFelt(t, "0x9"),
				ClassHash:           utils.HexToFelt(t, "0x2"),
				ContractAddressSalt: utils.HexToFelt(t, "0x3"),
				ConstructorCallData: utils.HexArrToFelt(t, []string{"0x4"}),
			},
		},
		"l1 handler": {
			json: `{"type": "L1_HANDLER", "version": "0x0", "contract_address": "0x2a", "entry_point_selector": "0x64",
				"calldata": ["0x1"], "nonce": "0x7"}`,
			want: &transaction.L1HandlerV0{
				ContractAddress:    utils.HexToFelt(t, "0x2a"),
				EntryPointSelector: utils.HexToFelt(t, "0x64"),
				CallData:           utils.HexArrToFelt(t, []string{"0x1"}),
				Nonce:              utils.HexToFelt(t, "0x7"),
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			wire, err := starknet.ParseTransaction([]byte(test.json))
			require.NoError(t, err)

			tx, err := sn2core.AdaptTransaction(wire)
			require.NoError(t, err)
			assert.Equal(t, test.want, tx)
		})
	}
}

func TestAdaptFeeMarket(t *testing.T) {
	wire, err := starknet.ParseTransaction([]byte(`{
		"type": "INVOKE_FUNCTION", "version": "0x3", "sender_address": "0x1", "calldata": [], "nonce": "0x0",
		"resource_bounds": {
			"L1_GAS": {"max_amount": "0x1", "max_price_per_unit": "0x2"},
			"L2_GAS": {"max_amount": "0x3", "max_price_per_unit": "0x4"},
			"L1_DATA_GAS": {"max_amount": "0x5", "max_price_per_unit": "0x6"}
		},
		"tip": "0x7",
		"paymaster_data": ["0x8"],
		"nonce_data_availability_mode": "L2",
		"fee_data_availability_mode": "L1"
	}`))
	require.NoError(t, err)

	tx, err := sn2core.AdaptTransaction(wire)
	require.NoError(t, err)
	invoke, ok := tx.(*transaction.InvokeV3)
	require.True(t, ok)

	l1DataGas := transaction.ResourceBounds{MaxAmount: 5, MaxPricePerUnit: felt.NewUint128(6)}
	assert.Equal(t, transaction.FeeMarket{
		ResourceBounds: transaction.ResourceBoundsMapping{
			L1Gas:     transaction.ResourceBounds{MaxAmount: 1, MaxPricePerUnit: felt.NewUint128(2)},
			L2Gas:     transaction.ResourceBounds{MaxAmount: 3, MaxPricePerUnit: felt.NewUint128(4)},
			L1DataGas: &l1DataGas,
		},
		Tip:           felt.NewUint64(7),
		PaymasterData: utils.HexArrToFelt(t, []string{"0x8"}),
		NonceDAMode:   transaction.DAModeL2,
		FeeDAMode:     transaction.DAModeL1,
	}, invoke.FeeMarket)
}

func TestAdaptTransactionErrors(t *testing.T) {
	version := func(v uint64) *felt.Felt {
		f := felt.FromUint64(v)
		return &f
	}
	query := utils.HexToFelt(t, "0x100000000000000000000000000000000")

	tests := map[string]struct {
		tx  *starknet.Transaction
		err error
	}{
		"missing version": {
			tx:  &starknet.Transaction{Type: starknet.TxnInvoke},
			err: starknet.ErrMissingField,
		},
		"deploy query": {
			tx:  &starknet.Transaction{Type: starknet.TxnDeploy, Version: query},
			err: sn2core.ErrQueryNotSupported,
		},
		"l1 handler query": {
			tx:  &starknet.Transaction{Type: starknet.TxnL1Handler, Version: query},
			err: sn2core.ErrQueryNotSupported,
		},
		"declare v4": {
			tx:  &starknet.Transaction{Type: starknet.TxnDeclare, Version: version(4)},
			err: transaction.ErrUnsupportedTransactionVersion,
		},
		"deploy account v2": {
			tx:  &starknet.Transaction{Type: starknet.TxnDeployAccount, Version: version(2)},
			err: transaction.ErrUnsupportedTransactionVersion,
		},
		"l1 handler v1": {
			tx:  &starknet.Transaction{Type: starknet.TxnL1Handler, Version: version(1)},
			err: transaction.ErrUnsupportedTransactionVersion,
		},
		"v3 without l2 gas": {
			tx: &starknet.Transaction{
				Type:    starknet.TxnInvoke,
				Version: version(3),
				ResourceBounds: map[starknet.Resource]starknet.ResourceBounds{
					starknet.ResourceL1Gas: {MaxAmount: &felt.One, MaxPricePerUnit: &felt.One},
				},
			},
			err: starknet.ErrMissingField,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := sn2core.AdaptTransaction(test.tx)
			require.ErrorIs(t, err, test.err)
		})
	}

	_, err := sn2core.AdaptTransaction(&starknet.Transaction{Version: version(1)})
	require.ErrorContains(t, err, "unknown transaction type")
}

func TestAdaptSierraClass(t *testing.T) {
	def, err := starknet.ParseClass([]byte(`{
		"sierra_program": ["0x1", "0x2", "0x3"],
		"contract_class_version": "0.1.0",
		"entry_points_by_type": {
			"CONSTRUCTOR": [{"selector": "0x28ffe4ff0f226a9107253e17a904099aa4f63a02a5621de0576e5aa71bc5194", "function_idx": 2}],
			"EXTERNAL": [{"selector": "0x5", "function_idx": 0}, {"selector": "0x6", "function_idx": 1}],
			"L1_HANDLER": []
		},
		"abi": "[]"
	}`))
	require.NoError(t, err)

	sierra := sn2core.AdaptSierraClass(def.Sierra)
	assert.Equal(t, "0.1.0", sierra.SemanticVersion)
	assert.Equal(t, "[]", sierra.Abi)
	assert.Equal(t, utils.HexArrToFelt(t, []string{"0x1", "0x2", "0x3"}), sierra.Program)
	assert.Equal(t, []class.SierraEntryPoint{
		{Index: 0, Selector: felt.FromUint64(5)},
		{Index: 1, Selector: felt.FromUint64(6)},
	}, sierra.EntryPoints.External)
	assert.Empty(t, sierra.EntryPoints.L1Handler)
	require.Len(t, sierra.EntryPoints.Constructor, 1)
	assert.Equal(t, uint64(2), sierra.EntryPoints.Constructor[0].Index)

	got, err := class.NewCalculator(provider).SierraClassHash(sierra)
	require.NoError(t, err)
	assert.False(t, got.IsZero())
}

func TestAdaptCasmClass(t *testing.T) {
	def, err := starknet.ParseClass([]byte(`{
		"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
		"compiler_version": "2.6.0",
		"bytecode": ["0xa", "0xb", "0xc", "0xd"],
		"bytecode_segment_lengths": [1, [2, 1]],
		"hints": [],
		"entry_points_by_type": {
			"CONSTRUCTOR": [],
			"EXTERNAL": [{"selector": "0x5", "offset": 1, "builtins": ["pedersen", "range_check"]}],
			"L1_HANDLER": []
		}
	}`))
	require.NoError(t, err)

	casm := sn2core.AdaptCasmClass(def.Casm)
	assert.Equal(t, "2.6.0", casm.CompilerVersion)
	assert.Len(t, casm.Bytecode, 4)
	assert.Equal(t, &class.SegmentLengths{Children: []class.SegmentLengths{
		{Length: 1},
		{Children: []class.SegmentLengths{{Length: 2}, {Length: 1}}},
	}}, casm.BytecodeSegmentLengths)
	assert.Equal(t, []class.CompiledEntryPoint{
		{Selector: felt.FromUint64(5), Offset: 1, Builtins: []string{"pedersen", "range_check"}},
	}, casm.EntryPoints.External)
	assert.Empty(t, casm.EntryPoints.Constructor)

	def.Casm.BytecodeSegmentLengths = nil
	assert.Nil(t, sn2core.AdaptCasmClass(def.Casm).BytecodeSegmentLengths)
}

func TestAdaptDeprecatedClass(t *testing.T) {
	program := `{"builtins": ["pedersen"], "data": ["0x1", "0x2"], "hints": {}}`
	entryPoints := `{
		"CONSTRUCTOR": [],
		"EXTERNAL": [{"selector": "0x5", "offset": "0x3a"}],
		"L1_HANDLER": [{"selector": "0x6", "offset": "0x4b"}]
	}`

	encoded, err := utils.Gzip64Encode([]byte(program))
	require.NoError(t, err)

	forms := map[string]string{
		"json program":   program,
		"base64 program": strconv.Quote(encoded),
	}
	for name, programJSON := range forms {
		t.Run(name, func(t *testing.T) {
			def, err := starknet.ParseClass([]byte(`{"abi": [], "program": ` + programJSON +
				`, "entry_points_by_type": ` + entryPoints + `}`))
			require.NoError(t, err)

			deprecated, err := sn2core.AdaptDeprecatedClass(def.DeprecatedCairo)
			require.NoError(t, err)
			assert.JSONEq(t, program, string(deprecated.Program))
			assert.JSONEq(t, `[]`, string(deprecated.Abi))
			assert.Equal(t, []class.EntryPoint{
				{Selector: felt.FromUint64(5), Offset: felt.FromUint64(0x3a)},
			}, deprecated.Externals)
			assert.Equal(t, []class.EntryPoint{
				{Selector: felt.FromUint64(6), Offset: felt.FromUint64(0x4b)},
			}, deprecated.L1Handlers)
			assert.Empty(t, deprecated.Constructors)
		})
	}

	t.Run("corrupt base64 program", func(t *testing.T) {
		_, err := sn2core.AdaptDeprecatedClass(&starknet.DeprecatedCairoClass{
			Program: json.RawMessage(`"not gzip"`),
		})
		require.ErrorIs(t, err, class.ErrInvalidProgram)
	})
}
