package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/encoder"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// result is the outcome of a subcommand. JSON and CBOR output encode it as is, text output
// is up to the result.
type result interface {
	writeText(w io.Writer) error
}

func (a *app) print(cmd *cobra.Command, r result) error {
	out := cmd.OutOrStdout()
	switch a.cfg.Output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case outputCBOR:
		data, err := encoder.Marshal(r)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return r.writeText(out)
	}
}

type hashResult struct {
	File string     `json:"file,omitempty"`
	Kind string     `json:"kind,omitempty"`
	Hash *felt.Felt `json:"hash"`
}

func (r *hashResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Hash)
	return err
}

type hashResults []*hashResult

// writeText prints a bare hash for a single file and prefixes each hash with its file otherwise.
func (r hashResults) writeText(w io.Writer) error {
	if len(r) == 1 {
		return r[0].writeText(w)
	}
	for _, h := range r {
		if _, err := fmt.Fprintf(w, "%s %s\n", h.File, h.Hash); err != nil {
			return err
		}
	}
	return nil
}

type addressResult struct {
	Address  *felt.Felt `json:"address"`
	Checksum string     `json:"checksum"`
}

func (r *addressResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Checksum)
	return err
}

type merkleResult struct {
	Root     *felt.Felt    `json:"root"`
	Leaves   []*felt.Felt  `json:"leaves"`
	Branches [][]felt.Felt `json:"branches"`
	Proof    []felt.Felt   `json:"proof,omitempty"`
}

// writeText prints the root followed by a table of every level, leaves first, and the proof
// if one was requested.
func (r *merkleResult) writeText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Root); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Index", "Hash"})
	for i, leaf := range r.Leaves {
		table.Append([]string{"0", strconv.Itoa(i), leaf.String()})
	}
	for level, branch := range r.Branches {
		for i := range branch {
			table.Append([]string{strconv.Itoa(level + 1), strconv.Itoa(i), branch[i].String()})
		}
	}
	table.Render()

	for i := range r.Proof {
		if _, err := fmt.Fprintf(w, "proof[%d] %s\n", i, &r.Proof[i]); err != nil {
			return err
		}
	}
	return nil
}

type hashMethodResult struct {
	Version string            `json:"version"`
	Method  crypto.HashMethod `json:"method"`
}

func (r *hashMethodResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Method)
	return err
}
