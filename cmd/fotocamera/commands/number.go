package commands

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fotocamera/internal/domain"
	"fotocamera/internal/httpapi"
	"fotocamera/internal/services/picker"
)

func numberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Show or change the DisplayNumber",
	}
	cmd.AddCommand(numberShowCmd(), numberSetCmd(), numberPickCmd())
	return cmd
}

func numberShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current DisplayNumber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				n   domain.DisplayNumber
				err error
			)
			if remote != "" {
				n, err = httpapi.NewClient(remote).Number(cmd.Context())
			} else {
				n, err = wire.Session.Number()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	addRemoteFlag(cmd)
	return cmd
}

func numberSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <nnnn>",
		Short: "Set and persist the DisplayNumber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := domain.ParseDisplayNumber(args[0])
			if err != nil {
				return err
			}
			if remote != "" {
				err = httpapi.NewClient(remote).SetNumber(cmd.Context(), n)
			} else {
				err = wire.Session.Apply(n)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	addRemoteFlag(cmd)
	return cmd
}

// number pick: line-driven digit picker.
func numberPickCmd() *cobra.Command {
	var pngPath string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick the DisplayNumber digit by digit",
		Long: `Opens the digit picker on the current number and reads commands from stdin:

  +N      increment selector N (1-4), wrapping 9 to 0
  -N      decrement selector N, wrapping 0 to 9
  N=D     set selector N to digit D
  ok      confirm and save
  cancel  discard changes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.Session.Picker()
			if err != nil {
				return err
			}
			n, ok, err := runPicker(p, cmd.InOrStdin(), cmd.OutOrStdout(), pngPath)
			if err != nil || !ok {
				return err
			}
			if err := wire.Session.Apply(n); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "also render the picker to this PNG after every change")
	return cmd
}

func runPicker(p *picker.Picker, in io.Reader, out io.Writer, pngPath string) (domain.DisplayNumber, bool, error) {
	show := func() error {
		digits, err := p.Digits()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%d %d | %d %d] > ", digits[0], digits[1], digits[2], digits[3])
		if pngPath != "" {
			return writePickerPNG(p, pngPath)
		}
		return nil
	}
	if err := show(); err != nil {
		return "", false, err
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line == "ok":
			n, err := p.Confirm()
			return n, err == nil, err
		case line == "cancel":
			p.Cancel()
			fmt.Fprintln(out, "cancelled")
			return "", false, nil
		default:
			if err := applyPickerCommand(p, line); err != nil {
				fmt.Fprintln(out, err)
			}
		}
		if err := show(); err != nil {
			return "", false, err
		}
	}
	p.Cancel()
	return "", false, sc.Err()
}

func applyPickerCommand(p *picker.Picker, line string) error {
	selector := func(s string) (int, error) {
		i, err := strconv.Atoi(s)
		if err != nil || i < 1 || i > picker.Selectors {
			return 0, fmt.Errorf("selector must be 1-%d, got %q", picker.Selectors, s)
		}
		return i - 1, nil
	}
	var err error
	switch {
	case strings.HasPrefix(line, "+"):
		var i int
		if i, err = selector(line[1:]); err == nil {
			_, err = p.Increment(i)
		}
	case strings.HasPrefix(line, "-"):
		var i int
		if i, err = selector(line[1:]); err == nil {
			_, err = p.Decrement(i)
		}
	case strings.Contains(line, "="):
		sel, val, _ := strings.Cut(line, "=")
		var i, v int
		if i, err = selector(sel); err != nil {
			return err
		}
		if v, err = strconv.Atoi(val); err != nil {
			return fmt.Errorf("digit must be a number, got %q", val)
		}
		_, err = p.Set(i, v)
	default:
		err = fmt.Errorf("unknown command %q", line)
	}
	return err
}

func writePickerPNG(p *picker.Picker, path string) error {
	img, err := p.Render()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
