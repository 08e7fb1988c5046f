package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gen2brain/alsatlv"
)

func main() {
	var (
		card    uint
		name    string
		numid   uint
		index   uint
		list    bool
		literal bool
		raw     bool
	)

	flag.UintVar(&card, "card", 0, "The card number to use.")
	flag.StringVar(&name, "name", "", "Read TLV metadata from the control element with this name.")
	flag.UintVar(&numid, "numid", 0, "Read TLV metadata from the control element with this numid.")
	flag.UintVar(&index, "index", 0, "The element index, for cards with several same-named elements.")
	flag.BoolVar(&list, "list", false, "List the card's elements that carry TLV metadata.")
	flag.BoolVar(&literal, "literal", false, "Print the decoded data as a Go literal.")
	flag.BoolVar(&raw, "raw", false, "Print the re-encoded raw words instead of a structured dump.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [word...]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nWords are 32-bit unsigned integers, decimal or 0x-prefixed hexadecimal.")
		fmt.Fprintln(os.Stderr, "With no words and no --name/--numid, words are read from standard input.")
	}

	flag.Parse()

	if list {
		if err := listElems(card); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	words, err := gatherWords(card, name, numid, index, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	item, err := alsatlv.DecodeItem(words)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding TLV data: %v\n", err)
		os.Exit(1)
	}

	switch {
	case raw:
		printWords(item.Encode())
	case literal:
		fmt.Printf("%#v\n", item)
	default:
		printItem(item, 0)
	}
}

// gatherWords collects the raw TLV words from a card element, from the positional
// arguments, or from standard input, in that order of preference.
func gatherWords(card uint, name string, numid, index uint, args []string) ([]uint32, error) {
	if name != "" || numid != 0 {
		return readFromCard(card, name, numid, index)
	}

	if len(args) > 0 {
		return parseWords(args)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanWords)

	var fields []string
	for scanner.Scan() {
		fields = append(fields, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}

	return parseWords(fields)
}

// readFromCard opens the control device and reads the element's TLV metadata.
func readFromCard(card uint, name string, numid, index uint) ([]uint32, error) {
	ctl, err := alsatlv.CtlOpen(card)
	if err != nil {
		return nil, err
	}
	defer ctl.Close()

	var elem *alsatlv.Elem

	if name != "" {
		elem, err = ctl.ElemByNameAndIndex(name, index)
	} else {
		elem, err = ctl.Elem(uint32(numid))
	}
	if err != nil {
		return nil, err
	}

	return elem.ReadTlvRaw()
}

// parseWords converts decimal or 0x-prefixed hexadecimal strings into TLV words.
func parseWords(fields []string) ([]uint32, error) {
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

// listElems prints the elements of the card whose metadata can be read or written.
func listElems(card uint) error {
	ctl, err := alsatlv.CtlOpen(card)
	if err != nil {
		return err
	}
	defer ctl.Close()

	fmt.Printf("Card '%s' has %d elements.\n", ctl.Name(), ctl.NumElems())

	for i := 0; i < ctl.NumElems(); i++ {
		elem, err := ctl.ElemByIndex(uint(i))
		if err != nil {
			continue
		}

		if !elem.TlvReadable() && !elem.TlvWritable() {
			continue
		}

		access := "r"
		if elem.TlvWritable() {
			access = "rw"
		}

		fmt.Printf("%d: %s (%s, %d values, tlv %s)\n",
			elem.ID(), elem.Name(), elem.TypeString(), elem.NumValues(), access)
	}

	return nil
}

func printWords(words []uint32) {
	fields := make([]string, len(words))
	for i, w := range words {
		fields[i] = fmt.Sprintf("%#08x", w)
	}

	fmt.Println(strings.Join(fields, " "))
}

// db formats a raw dB value expressed in 0.01 dB units.
func db(v int32) string {
	if v == alsatlv.CTL_VALUE_MUTE {
		return "mute"
	}

	return fmt.Sprintf("%.2fdB", float64(v)/alsatlv.DB_VALUE_MULTIPLIER)
}

// printItem writes a structured dump of a decoded item, one line per record.
func printItem(item alsatlv.Item, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := item.(type) {
	case alsatlv.DbScale:
		fmt.Printf("%sDbScale: min %s, step %.2fdB, mute %t\n",
			indent, db(v.Min), float64(v.Step)/alsatlv.DB_VALUE_MULTIPLIER, v.MuteAvail)
	case alsatlv.DbInterval:
		fmt.Printf("%sDbInterval: min %s, max %s, linear %t, mute %t\n",
			indent, db(v.Min), db(v.Max), v.Linear, v.MuteAvail)
	case alsatlv.DbRange:
		fmt.Printf("%sDbRange: %d entries\n", indent, len(v.Entries))
		for _, entry := range v.Entries {
			fmt.Printf("%s  values %d..%d:\n", indent, entry.MinVal, entry.MaxVal)
			printItem(entry.Data, depth+2)
		}
	case alsatlv.Chmap:
		names := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			names[i] = chmapEntryName(e)
		}
		fmt.Printf("%sChmap: mode %s, positions %s\n", indent, v.Mode, strings.Join(names, " "))
	case alsatlv.Container:
		fmt.Printf("%sContainer: %d items\n", indent, len(v.Entries))
		for _, sub := range v.Entries {
			printItem(sub, depth+1)
		}
	case alsatlv.Unknown:
		fmt.Printf("%sUnknown:", indent)
		for _, w := range v {
			fmt.Printf(" %#08x", w)
		}
		fmt.Println()
	default:
		fmt.Printf("%s%#v\n", indent, item)
	}
}

// chmapEntryName renders one channel-map position with its attribute flags.
func chmapEntryName(e alsatlv.ChmapEntry) string {
	name, ok := alsatlv.ChmapPositionNames[e.Pos]
	if !ok {
		name = fmt.Sprintf("POS%d", e.Pos)
	}

	if e.DriverSpec {
		name = fmt.Sprintf("driver(%d)", e.Pos)
	}

	if e.PhaseInverse {
		name += "[phase inverse]"
	}

	return name
}
