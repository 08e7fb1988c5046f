package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gen2brain/alsatlv"
)

func main() {
	var (
		card   uint
		name   string
		numid  uint
		index  uint
		minVal int
		maxVal int
		step   int
	)

	flag.UintVar(&card, "card", 0, "The card number to use.")
	flag.StringVar(&name, "name", "", "Use the TLV metadata and range of the control element with this name.")
	flag.UintVar(&numid, "numid", 0, "Use the TLV metadata and range of the control element with this numid.")
	flag.UintVar(&index, "index", 0, "The element index, for cards with several same-named elements.")
	flag.IntVar(&minVal, "min", 0, "The minimum raw value of the control element.")
	flag.IntVar(&maxVal, "max", 0, "The maximum raw value of the control element.")
	flag.IntVar(&step, "step", 1, "The step between raw values of the control element.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] to-db VALUE [word...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [options] from-db DB [word...]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nto-db converts a raw element value to decibels; from-db does the reverse.")
		fmt.Fprintln(os.Stderr, "TLV words come from the named element, the trailing arguments, or standard input.")
		fmt.Fprintln(os.Stderr, "Without --name/--numid the raw value range must be given with --min/--max/--step.")
	}

	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	mode := args[0]
	if mode != "to-db" && mode != "from-db" {
		fmt.Fprintf(os.Stderr, "Error: unknown mode '%s', want to-db or from-db\n", mode)
		os.Exit(2)
	}

	item, vr, err := gatherInputs(card, name, numid, index, args[2:],
		alsatlv.ValueRange{Min: int32(minVal), Max: int32(maxVal), Step: int32(step)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch mode {
	case "to-db":
		val, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid value '%s': %v\n", args[1], err)
			os.Exit(1)
		}

		db, err := alsatlv.ItemValToDb(item, int32(val), vr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%.2f\n", db)
	case "from-db":
		db, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid dB value '%s': %v\n", args[1], err)
			os.Exit(1)
		}

		val, err := alsatlv.ItemValFromDb(item, db, vr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%d\n", val)
	}
}

// gatherInputs resolves the TLV item and the raw value range, either live from a control
// element or from the given words and flags.
func gatherInputs(card uint, name string, numid, index uint, args []string, vr alsatlv.ValueRange) (alsatlv.Item, alsatlv.ValueRange, error) {
	if name != "" || numid != 0 {
		return readFromCard(card, name, numid, index)
	}

	words, err := parseWords(args)
	if err != nil {
		return nil, alsatlv.ValueRange{}, err
	}

	item, err := alsatlv.DecodeItem(words)
	if err != nil {
		return nil, alsatlv.ValueRange{}, fmt.Errorf("decoding TLV data: %w", err)
	}

	if vr.Max < vr.Min {
		return nil, alsatlv.ValueRange{}, fmt.Errorf("invalid value range: max %d below min %d", vr.Max, vr.Min)
	}

	return item, vr, nil
}

// readFromCard opens the control device and reads both the element's TLV metadata and its
// raw value range.
func readFromCard(card uint, name string, numid, index uint) (alsatlv.Item, alsatlv.ValueRange, error) {
	ctl, err := alsatlv.CtlOpen(card)
	if err != nil {
		return nil, alsatlv.ValueRange{}, err
	}
	defer ctl.Close()

	var elem *alsatlv.Elem

	if name != "" {
		elem, err = ctl.ElemByNameAndIndex(name, index)
	} else {
		elem, err = ctl.Elem(uint32(numid))
	}
	if err != nil {
		return nil, alsatlv.ValueRange{}, err
	}

	vr, err := elem.ValueRange()
	if err != nil {
		return nil, alsatlv.ValueRange{}, err
	}

	item, err := elem.ReadTlv()
	if err != nil {
		return nil, alsatlv.ValueRange{}, err
	}

	return item, vr, nil
}

// parseWords converts decimal or 0x-prefixed hexadecimal strings into TLV words, falling
// back to standard input when no arguments were given.
func parseWords(fields []string) ([]uint32, error) {
	if len(fields) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Split(bufio.ScanWords)

		for scanner.Scan() {
			fields = append(fields, scanner.Text())
		}

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no TLV words given")
	}

	words := make([]uint32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid word '%s': %w", f, err)
		}
		words = append(words, uint32(v))
	}

	return words, nil
}
