package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NethermindEth/starkhash/adapters/sn2core"
	"github.com/NethermindEth/starkhash/core/address"
	"github.com/NethermindEth/starkhash/core/class"
	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/core/merkle"
	"github.com/NethermindEth/starkhash/core/transaction"
	"github.com/NethermindEth/starkhash/core/typeddata"
	"github.com/NethermindEth/starkhash/starknet"
	"github.com/NethermindEth/starkhash/utils"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

const (
	classHashF  = "class-hash"
	saltF       = "salt"
	deployerF   = "deployer"
	calldataF   = "calldata"
	accountF    = "account"
	hashMethodF = "hash-method"
	proofF      = "proof"
)

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// parseFelt accepts hex with a 0x prefix and decimal otherwise.
func parseFelt(s string) (felt.Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return felt.FromHex(s)
	}
	return felt.FromDecimal(s)
}

func parseFelts(values []string) ([]*felt.Felt, error) {
	felts := make([]*felt.Felt, len(values))
	for i, s := range values {
		f, err := parseFelt(s)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		felts[i] = &f
	}
	return felts, nil
}

func txHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tx-hash <file>...",
		Short: "Compute the hash of transactions in feeder gateway or JSON-RPC form",
		Long: `Compute the hash of one transaction per file on the configured chain.
Files are hashed concurrently, a warning is logged when a file declares a transaction_hash
that differs from the computed one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calculator := transaction.NewCalculator(a.provider)
			results := make(hashResults, len(args))

			workerPool := pool.New().WithErrors().WithMaxGoroutines(a.cfg.Concurrency)
			for i, file := range args {
				i, file := i, file
				workerPool.Go(func() error {
					if err := cmd.Context().Err(); err != nil {
						return err
					}
					data, err := readInput(cmd, file)
					if err != nil {
						return err
					}
					hash, err := a.transactionHash(calculator, data)
					if err != nil {
						return errors.Wrap(err, file)
					}
					results[i] = &hashResult{File: file, Hash: &hash}
					return nil
				})
			}
			if err := workerPool.Wait(); err != nil {
				return err
			}
			return a.print(cmd, results)
		},
	}
}

func (a *app) transactionHash(calculator *transaction.Calculator, data []byte) (felt.Felt, error) {
	wire, err := starknet.ParseTransaction(data)
	if err != nil {
		return felt.Felt{}, err
	}
	tx, err := sn2core.AdaptTransaction(wire)
	if err != nil {
		return felt.Felt{}, err
	}
	hash, err := calculator.Hash(tx, &a.chainID)
	if err != nil {
		return felt.Felt{}, err
	}

	if wire.Hash != nil && !wire.Hash.Equal(&hash) {
		a.log.Warnw("Computed hash differs from the declared transaction_hash",
			"declared", wire.Hash, "computed", &hash, "type", wire.Type, "version", tx.Version())
	}
	return hash, nil
}

func classHashCmd(a *app) *cobra.Command {
	method := defaultCasmMethod

	cmd := &cobra.Command{
		Use:   "class-hash <file>",
		Short: "Compute the hash of a Sierra, compiled (casm) or Cairo 0 class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			def, err := starknet.ParseClass(data)
			if err != nil {
				return errors.Wrap(err, args[0])
			}

			calculator := class.NewCalculator(a.provider)
			res := new(hashResult)
			var hash felt.Felt
			switch {
			case def.Sierra != nil:
				res.Kind = "sierra"
				hash, err = calculator.SierraClassHash(sn2core.AdaptSierraClass(def.Sierra))
			case def.Casm != nil:
				res.Kind = "casm"
				var casmMethod crypto.HashMethod
				if casmMethod, err = a.casmHashMethod(cmd); err != nil {
					return err
				}
				a.log.Debugw("Hashing compiled class", "method", casmMethod)
				hash, err = calculator.CompiledClassHash(sn2core.AdaptCasmClass(def.Casm), casmMethod)
			default:
				res.Kind = "cairo0"
				var deprecated *class.DeprecatedClass
				if deprecated, err = sn2core.AdaptDeprecatedClass(def.DeprecatedCairo); err != nil {
					return err
				}
				hash, err = calculator.DeprecatedClassHash(deprecated)
			}
			if err != nil {
				return errors.Wrapf(err, "hash %s class", res.Kind)
			}

			res.Hash = &hash
			return a.print(cmd, res)
		},
	}

	cmd.Flags().Var(&method, casmHashMethodF, casmMethodUsage)
	cmd.Flags().String(starknetVersionF, "", versionUsage)
	cmd.MarkFlagsMutuallyExclusive(casmHashMethodF, starknetVersionF)
	return cmd
}

// casmHashMethod prefers an explicit --casm-hash-method, then the method of the configured
// Starknet version, then the configured method.
func (a *app) casmHashMethod(cmd *cobra.Command) (crypto.HashMethod, error) {
	if cmd.Flags().Changed(casmHashMethodF) || a.cfg.StarknetVersion == "" {
		return a.cfg.CasmHashMethod, nil
	}
	return crypto.HashMethodForVersion(a.cfg.StarknetVersion)
}

func addressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Compute the address of a contract deployed from a class",
		Long: `Compute the address a contract gets when deployer deploys class-hash with the given
salt and constructor calldata. The address is printed in its checksum form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			values := make(map[string]felt.Felt, 3)
			for _, name := range []string{classHashF, saltF, deployerF} {
				s, err := flags.GetString(name)
				if err != nil {
					return err
				}
				if values[name], err = parseFelt(s); err != nil {
					return errors.Wrapf(err, "--%s", name)
				}
			}
			rawCalldata, err := flags.GetStringSlice(calldataF)
			if err != nil {
				return err
			}
			calldata, err := parseFelts(rawCalldata)
			if err != nil {
				return errors.Wrap(err, "--"+calldataF)
			}

			classHash, salt, deployer := values[classHashF], values[saltF], values[deployerF]
			addr := address.NewCalculator(a.provider).FromHash(&classHash, calldata, &salt, &deployer)
			return a.print(cmd, &addressResult{Address: &addr, Checksum: address.Checksum(a.provider, &addr)})
		},
	}

	cmd.Flags().String(classHashF, "", "Hash of the deployed class.")
	cmd.Flags().String(saltF, "0x0", "Salt of the deployment.")
	cmd.Flags().String(deployerF, "0x0", "Address of the deploying contract, 0 for deploy account transactions.")
	cmd.Flags().StringSlice(calldataF, nil, "Constructor calldata, comma separated.")
	if err := cmd.MarkFlagRequired(classHashF); err != nil {
		panic(err)
	}
	return cmd
}

func checksumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <address>",
		Short: "Print the checksum form of an address",
		Long: `Print the checksum form of an address. Mixed case input is verified against its
checksum first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			digits := strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
			if strings.ToLower(digits) != digits && strings.ToUpper(digits) != digits {
				if err := address.VerifyChecksum(a.provider, input); err != nil {
					return err
				}
			}
			addr, err := felt.FromHex(input)
			if err != nil {
				return err
			}
			return a.print(cmd, &addressResult{Address: &addr, Checksum: address.Checksum(a.provider, &addr)})
		},
	}
}

func typedDataCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typed-data <file>",
		Short: "Compute the message hash of SNIP-12 typed data for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			td := new(typeddata.TypedData)
			if err = json.Unmarshal(data, td); err != nil {
				return errors.Wrap(err, args[0])
			}

			rawAccount, err := cmd.Flags().GetString(accountF)
			if err != nil {
				return err
			}
			account, err := parseFelt(rawAccount)
			if err != nil {
				return errors.Wrap(err, "--"+accountF)
			}

			hash, err := typeddata.NewCalculator(a.provider).MessageHash(td, &account)
			if err != nil {
				return err
			}
			return a.print(cmd, &hashResult{Kind: "revision " + strconv.Itoa(int(td.Revision())), Hash: &hash})
		},
	}

	cmd.Flags().String(accountF, "", "Address of the signing account.")
	if err := cmd.MarkFlagRequired(accountF); err != nil {
		panic(err)
	}
	return cmd
}

func merkleCmd(a *app) *cobra.Command {
	method := crypto.Pedersen
	var proof int

	cmd := &cobra.Command{
		Use:   "merkle <leaf>...",
		Short: "Build a Merkle tree over the given leaves",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leafPtrs, err := parseFelts(args)
			if err != nil {
				return err
			}
			leaves := utils.Map(leafPtrs, func(f *felt.Felt) felt.Felt { return *f })

			tree, err := merkle.New(crypto.NewHasher(a.provider, method), leaves)
			if err != nil {
				return err
			}
			root := tree.Root()
			res := &merkleResult{Root: &root, Leaves: leafPtrs, Branches: tree.Branches()}
			if cmd.Flags().Changed(proofF) {
				if res.Proof, err = tree.Proof(proof); err != nil {
					return err
				}
			}
			return a.print(cmd, res)
		},
	}

	cmd.Flags().Var(&method, hashMethodF, "Hash method of the tree. Options: pedersen, poseidon.")
	cmd.Flags().IntVar(&proof, proofF, 0, "Index of the leaf to print the proof of.")
	return cmd
}

func hashMethodCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-method <starknet-version>",
		Short: "Print the compiled class hash method of a Starknet version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := crypto.HashMethodForVersion(args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, &hashMethodResult{Version: args[0], Method: method})
		},
	}
}

func selectorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selector <name>",
		Short: "Print the entry point selector of a function name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := crypto.SelectorFromName(a.provider, args[0])
			return a.print(cmd, &hashResult{Hash: &selector})
		},
	}
}
