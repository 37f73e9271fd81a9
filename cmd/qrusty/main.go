package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/qrusty/qr"
	"github.com/qrusty/qr/coding"
	"github.com/qrusty/qr/split"
)

var g = struct {
	width, height int           // minimum image size
	border        int           // quiet zone
	fn            string        // filename
	format        string        // output format
	lev           qr.Level      // QR correction level
	modes         split.ModeSet // segment modes, 0 for codec segmentation
	alnum         bool          // alphanumeric mode only
	optimize      bool          // optimize segments
	nokanji       bool          // kanji mode disabled
	upper         bool          // uppercase
	verbose       bool          // print the plan
}{
	border: qr.DefaultBorder,
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults for -w, -H, -l and -t are read from
QRUSTY_WIDTH, QRUSTY_HEIGHT, QRUSTY_LEVEL and QRUSTY_FORMAT in the
environment or in a .env file in the current directory.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qrusty version 0.3.0
Copyright (c) 2025 The qrusty Authors`)
	os.Exit(0)
}

var formats = []string{
	"png", "jpg", "jpeg", "png64", "jpg64", "jpeg64", "svg",
	"pbm", "utf8", "utf8i", "ascii",
}

func parseFlags(cfg config) {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.alnum, 'a', "encode entire data in alphanumeric mode; "+
		"implies -O")
	getopt.Flag(&g.optimize, 'O', "split data into segments and build "+
		"the bit stream here instead of in the symbol codec")
	getopt.Flag(&g.nokanji, 'K', "disable kanji mode for -O")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.verbose, 'v', "print version, level and segments "+
		"to standard error")
	getopt.Flag(&g.border, 'm', `quiet zone modules`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	w := getopt.Unsigned('w', uint64(cfg.Width),
		&getopt.UnsignedLimit{Base: 0, Bits: 32, Min: 1, Max: qr.MaxPixels},
		"minimum image width in pixels", "width")
	h := getopt.Unsigned('H', uint64(cfg.Height),
		&getopt.UnsignedLimit{Base: 0, Bits: 32, Min: 1, Max: qr.MaxPixels},
		"minimum image height in pixels", "height")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, cfg.Level,
		"error correction level, lowest to highest", "l|m|q|h")
	ff := getopt.Enum('t', formats, cfg.Format, `output format, one of: `+
		strings.Join(formats, ", ")+
		`; "64" types are base64 text; "pbm" is netpbm P4; `+
		`"utf8i" has colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.border < 0 {
		fmt.Fprintln(os.Stderr, "-m must not be negative")
		usage()
	}
	g.width, g.height = int(*w), int(*h)
	var err error
	if g.lev, err = qr.ParseLevel(*lev); err != nil {
		log.Fatalln(err)
	}
	switch {
	case g.alnum:
		g.modes = split.AlphanumericOnly
	case g.optimize && g.nokanji:
		g.modes = split.Standard
	case g.optimize:
		g.modes = split.All
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	g.format = *ff
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	color.NoColor = color.NoColor || !isatty.IsTerminal(os.Stderr.Fd())
	log.SetPrefix(color.New(color.FgRed, color.Bold).Sprint("qrusty: "))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	parseFlags(cfg)

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	var c *qr.Code
	if g.modes != 0 {
		c, err = qr.EncodeSegments(s, g.lev, g.modes)
	} else {
		c, err = qr.Encode(s, g.lev)
	}
	if err != nil {
		log.Fatalln(err)
	}
	c.Border = g.border
	c.MinDimensions(g.width, g.height)
	if g.verbose {
		plan(s, c)
	}
	write(c)
}

// plan logs the version, level and, for -O and -a, the segments of c.
func plan(s string, c *qr.Code) {
	log.SetPrefix("")
	log.Printf("version %s-%s, %d modules, scale %d",
		c.Version, c.Level, c.Size, c.Scale)
	if g.modes == 0 {
		return
	}
	l := coding.Level(c.Level)
	segs, _, err := split.Split(s, l, g.modes)
	if err != nil {
		return
	}
	class := c.Version.SizeClass()
	log.Printf("%d of %d bits in %d segments", coding.EncodedLength(s,
		segs, class), c.Version.DataBits(l), len(segs))
	for _, seg := range segs {
		log.Printf("  %-12s %4d bits  %q", seg.Mode,
			seg.EncodedLength(s, class), seg.Text(s))
	}
}

func write(c *qr.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	err := encode(w, c)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func encode(w io.Writer, c *qr.Code) error {
	var err error
	switch g.format {
	case "utf8", "utf8i":
		_, err = io.WriteString(w, c.Text(g.format == "utf8i"))
	case "ascii":
		_, err = io.WriteString(w, c.ASCII())
	case "pbm":
		err = c.EncodePBM(w)
	case "svg":
		_, err = io.WriteString(w, c.SVG())
	default:
		f, err := qr.ParseFormat(g.format)
		if err != nil {
			return err
		}
		if !f.IsBase64() {
			return c.EncodeImage(w, f)
		}
		var b bytes.Buffer
		if err := c.EncodeImage(&b, f); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(b.Bytes()))
		return err
	}
	return err
}
