package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/sm83-alu/pkg/config"
	"github.com/oisee/sm83-alu/pkg/inst"
	"github.com/oisee/sm83-alu/pkg/log"
	"github.com/oisee/sm83-alu/pkg/result"
	"github.com/oisee/sm83-alu/pkg/verify"
)

func main() {
	var (
		cfgPath string
		cfg     config.Config
	)

	rootCmd := &cobra.Command{
		Use:          "sm83alu",
		Short:        "SM83 ALU core: execute, verify and inspect register-form instructions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(cfgPath); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return setupLogging(cfg.Log)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "sm83alu.toml", "TOML configuration file")

	// exec command
	var (
		hexProgram bool
		statePath  string
		savePath   string
		trace      bool
		seed       regFlags
	)

	execCmd := &cobra.Command{
		Use:   "exec [program]",
		Short: "Run an instruction sequence and print the register file",
		Long: "Run a colon-separated program such as \"ADD A, B : INC C\", or raw\n" +
			"opcode bytes with --hex (\"80 0C\").",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := parseProgram(strings.Join(args, " "), hexProgram)
			if err != nil {
				return err
			}

			snap := &result.Snapshot{}
			if statePath != "" {
				if snap, err = result.LoadSnapshot(statePath); err != nil {
					return fmt.Errorf("load state: %w", err)
				}
			}
			if err := seed.apply(cmd, &snap.Registers); err != nil {
				return err
			}

			n, err := run(&snap.Registers, seq, trace || cfg.Trace.Enabled)
			snap.Executed += n
			snap.Program = seq
			fmt.Fprintln(cmd.OutOrStdout(), &snap.Registers)
			if err != nil {
				return err
			}

			if savePath != "" {
				if err := result.SaveSnapshot(savePath, snap); err != nil {
					return fmt.Errorf("save state: %w", err)
				}
				log.ModCLI.Infof("state written to %s", savePath)
			}
			return nil
		},
	}
	execCmd.Flags().BoolVar(&hexProgram, "hex", false, "Program is hex opcode bytes")
	execCmd.Flags().StringVar(&statePath, "state", "", "Load registers from a snapshot file")
	execCmd.Flags().StringVar(&savePath, "save", "", "Write registers to a snapshot file after running")
	execCmd.Flags().BoolVarP(&trace, "trace", "t", false, "Log every executed instruction")
	seed.register(execCmd)

	// verify command
	var (
		workers int
		output  string
		golden  string
	)

	verifyCmd := &cobra.Command{
		Use:   "verify [instructions]",
		Short: "Sweep instructions over their input space against the reference model",
		RunE: func(cmd *cobra.Command, args []string) error {
			vcfg := verify.Config{Workers: cfg.Verify.Workers}
			if cmd.Flags().Changed("workers") {
				vcfg.Workers = workers
			}
			if len(args) > 0 {
				seq, err := inst.ParseSeq(strings.Join(args, " "))
				if err != nil {
					return err
				}
				vcfg.Instructions = seq
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			rep, err := verify.Run(ctx, vcfg, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d instructions, %d cases\n", len(rep.Findings), rep.Cases())
			for _, f := range rep.Failed() {
				fmt.Fprintf(out, "  FAIL %-12s %d mismatches, first: %s\n", f.Mnemonic, f.Mismatches, f.First)
			}

			if output != "" {
				if err := writeReport(output, rep); err != nil {
					return err
				}
				fmt.Fprintf(out, "Written to %s\n", output)
			}

			if golden == "" {
				golden = cfg.Verify.Golden
			}
			if golden != "" {
				diffs, err := compareGolden(golden, rep)
				if err != nil {
					return err
				}
				for _, d := range diffs {
					fmt.Fprintf(out, "  DIGEST %s\n", d)
				}
				if len(diffs) > 0 {
					return fmt.Errorf("%d digests differ from %s", len(diffs), golden)
				}
			}

			if n := len(rep.Failed()); n > 0 {
				return fmt.Errorf("%d instructions failed verification", n)
			}
			return nil
		},
	}
	verifyCmd.Flags().IntVar(&workers, "workers", 0, "Number of workers (0 = NumCPU)")
	verifyCmd.Flags().StringVar(&output, "output", "", "Output JSON report path")
	verifyCmd.Flags().StringVar(&golden, "golden", "", "Compare digests against a saved JSON report")

	// digest command
	digestCmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the truth-table digest of every instruction",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := verify.Run(cmd.Context(), verify.Config{Workers: cfg.Verify.Workers}, nil)
			if err != nil {
				return err
			}
			for _, f := range rep.Findings {
				fmt.Fprintf(cmd.OutOrStdout(), "%02X  %-12s %016x\n", f.Opcode, f.Mnemonic, f.Digest)
			}
			return nil
		},
	}

	// disasm command
	disasmCmd := &cobra.Command{
		Use:   "disasm [hex bytes]",
		Short: "Disassemble SM83 register-form opcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := parseProgram(strings.Join(args, " "), true)
			if err != nil {
				return err
			}
			for _, in := range seq {
				op, _ := inst.Encode(in)
				fmt.Fprintf(cmd.OutOrStdout(), "%02X  %s\n", op, inst.Disassemble(in))
			}
			return nil
		},
	}

	// encode command
	encodeCmd := &cobra.Command{
		Use:   "encode [instructions]",
		Short: "Assemble a colon-separated program into opcode bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := inst.ParseSeq(strings.Join(args, " "))
			if err != nil {
				return err
			}
			buf := make([]byte, 0, len(seq))
			for _, in := range seq {
				op, err := inst.Encode(in)
				if err != nil {
					return err
				}
				buf = append(buf, op)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToUpper(hex.EncodeToString(buf)))
			return nil
		},
	}

	// shorten command
	var (
		maxLen   int
		deadName string
	)

	shortenCmd := &cobra.Command{
		Use:   "shorten [program]",
		Short: "Search for a shorter equivalent instruction sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := inst.ParseSeq(strings.Join(args, " "))
			if err != nil {
				return err
			}
			dead, err := parseDead(deadName)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			repl, ok, err := verify.Shorten(ctx, target, maxLen, dead)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintf(out, "No shorter sequence for %s\n", inst.DisassembleSeq(target))
				return nil
			}
			text := inst.DisassembleSeq(repl)
			if len(repl) == 0 {
				text = "(nothing)"
			}
			fmt.Fprintf(out, "%s -> %s\n", inst.DisassembleSeq(target), text)
			return nil
		},
	}
	shortenCmd.Flags().IntVar(&maxLen, "max-len", 2, "Maximum replacement length")
	shortenCmd.Flags().StringVar(&deadName, "dead", "none", "Dead flags: none, half, all")

	// config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration to the --config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Written to %s\n", cfgPath)
			return nil
		},
	}

	rootCmd.AddCommand(execCmd, verifyCmd, digestCmd, disasmCmd, encodeCmd, shortenCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(lc config.LogConfig) error {
	if lc.Level != "" {
		if err := log.SetLevel(lc.Level); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	for _, name := range lc.Debug {
		mask, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %q", name)
		}
		log.EnableDebugModules(mask)
	}
	return nil
}

func writeReport(path string, rep *result.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return result.WriteJSON(f, rep)
}

func compareGolden(path string, rep *result.Report) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	want, err := result.ReadJSON(f)
	if err != nil {
		return nil, err
	}
	return result.CompareDigests(want, rep), nil
}
