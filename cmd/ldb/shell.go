package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-tty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lindadb/ldb/lv"
	"github.com/lindadb/ldb/store"
)

// shellAction runs a local, in-process REPL over a fresh store.Store —
// useful for poking at out/in/rd/inp/rdp/len semantics without a
// server to talk to. Input is read a rune at a time via mattn/go-tty
// so backspace and Ctrl-C behave like a normal line editor even though
// the terminal is left in raw mode.
func shellAction(ctx *cli.Context) error {
	initLogger(ctx.Int(verbosityFlag.Name))

	s := store.New(
		store.WithSpace(ctx.String(spaceFlag.Name)),
		store.WithCapacity(ctx.Int(capacityFlag.Name)),
		store.WithCacheSize(ctx.Int(cacheSizeFlag.Name)),
	)
	defer s.Close()

	t, err := tty.Open()
	if err != nil {
		return errors.Wrap(err, "open tty")
	}
	defer t.Close()

	fmt.Fprintln(t.Output(), "ldb shell -- out/in/rd/inp/rdp/len, Ctrl-C to quit")
	for {
		fmt.Fprint(t.Output(), "> ")
		line, err := readLine(t)
		if err != nil {
			fmt.Fprintln(t.Output())
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := dispatch(t, s, line); err != nil {
			fmt.Fprintln(t.Output(), "error:", err)
		}
	}
}

// readLine collects runes until Enter, honoring backspace; it returns
// an error when the reader is closed or Ctrl-C is pressed.
func readLine(t *tty.TTY) (string, error) {
	var b strings.Builder
	for {
		r, err := t.ReadRune()
		if err != nil {
			return "", err
		}
		switch r {
		case '\r', '\n':
			return b.String(), nil
		case 3: // Ctrl-C
			return "", errors.New("interrupted")
		case 127, 8: // backspace/delete
			s := b.String()
			if len(s) > 0 {
				b.Reset()
				b.WriteString(s[:len(s)-1])
				fmt.Fprint(t.Output(), "\b \b")
			}
			continue
		}
		b.WriteRune(r)
		fmt.Fprint(t.Output(), string(r))
	}
}

func dispatch(t *tty.TTY, s *store.Store, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cmd {
	case "out":
		values, err := parseValues(args)
		if err != nil {
			return err
		}
		return s.Out(ctx, lv.NewTuple(values...))
	case "in", "rd":
		parts, err := parseTemplate(args)
		if err != nil {
			return err
		}
		var tup lv.Tuple
		if cmd == "in" {
			tup, err = s.In(ctx, lv.NewTemplate(parts...))
		} else {
			tup, err = s.Rd(ctx, lv.NewTemplate(parts...))
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(t.Output())
		fmt.Fprintln(t.Output(), tup.String())
		return nil
	case "inp", "rdp":
		parts, err := parseTemplate(args)
		if err != nil {
			return err
		}
		var tup lv.Tuple
		var ok bool
		if cmd == "inp" {
			tup, ok = s.Inp(lv.NewTemplate(parts...))
		} else {
			tup, ok = s.Rdp(lv.NewTemplate(parts...))
		}
		fmt.Fprintln(t.Output())
		if !ok {
			fmt.Fprintln(t.Output(), "no match")
			return nil
		}
		fmt.Fprintln(t.Output(), tup.String())
		return nil
	case "len":
		fmt.Fprintln(t.Output())
		fmt.Fprintln(t.Output(), s.Len())
		return nil
	default:
		fmt.Fprintln(t.Output())
		return errors.Errorf("unknown command %q (try out/in/rd/inp/rdp/len)", cmd)
	}
}

// parseValues and parseTemplate share a token grammar: kind:value for
// a literal (e.g. i64:5, str:hello), or *kind for a typed wildcard
// (template-only). Supported kinds: i16 u16 i32 u32 i64 u64 f32 f64 str.
func parseValues(tokens []string) ([]lv.Value, error) {
	values := make([]lv.Value, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "*") {
			return nil, errors.Errorf("wildcard %q not allowed in out()", tok)
		}
		v, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseTemplate(tokens []string) ([]lv.Value, error) {
	parts := make([]lv.Value, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "*") {
			v, err := wildcardFor(strings.TrimPrefix(tok, "*"))
			if err != nil {
				return nil, err
			}
			parts = append(parts, v)
			continue
		}
		v, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		parts = append(parts, v)
	}
	return parts, nil
}

func parseLiteral(tok string) (lv.Value, error) {
	kind, rest, ok := strings.Cut(tok, ":")
	if !ok {
		return lv.Value{}, errors.Errorf("expected kind:value, got %q", tok)
	}
	switch kind {
	case "i16":
		n, err := strconv.ParseInt(rest, 10, 16)
		return lv.I16(int16(n)), err
	case "u16":
		n, err := strconv.ParseUint(rest, 10, 16)
		return lv.U16(uint16(n)), err
	case "i32":
		n, err := strconv.ParseInt(rest, 10, 32)
		return lv.I32(int32(n)), err
	case "u32":
		n, err := strconv.ParseUint(rest, 10, 32)
		return lv.U32(uint32(n)), err
	case "i64":
		n, err := strconv.ParseInt(rest, 10, 64)
		return lv.I64(n), err
	case "u64":
		n, err := strconv.ParseUint(rest, 10, 64)
		return lv.U64(n), err
	case "f32":
		n, err := strconv.ParseFloat(rest, 32)
		return lv.F32(float32(n)), err
	case "f64":
		n, err := strconv.ParseFloat(rest, 64)
		return lv.F64(n), err
	case "str":
		return lv.Str(rest), nil
	default:
		return lv.Value{}, errors.Errorf("unknown kind %q", kind)
	}
}

func wildcardFor(kind string) (lv.Value, error) {
	switch kind {
	case "i16":
		return lv.Type[int16](), nil
	case "u16":
		return lv.Type[uint16](), nil
	case "i32":
		return lv.Type[int32](), nil
	case "u32":
		return lv.Type[uint32](), nil
	case "i64":
		return lv.Type[int64](), nil
	case "u64":
		return lv.Type[uint64](), nil
	case "f32":
		return lv.Type[float32](), nil
	case "f64":
		return lv.Type[float64](), nil
	case "str":
		return lv.Type[string](), nil
	default:
		return lv.Value{}, errors.Errorf("unknown wildcard kind %q", kind)
	}
}
