// Command texpack converts an image into the ARGB4444 texel stream a
// hardware rasterizer uploads: one little-endian 16-bit word per texel,
// row-major.
//
//	texpack [-o out.bin] [-hex] <image|quadrants>
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"graphite-raster/internal/texture"
)

func main() {
	outPath := flag.String("o", "", "Output file (default: stdout)")
	hexOut := flag.Bool("hex", false, "Write one hex word per line instead of binary")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texpack [-o out.bin] [-hex] <image|quadrants>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	img, err := source(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	words := texture.Pack4444(img)

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := write(w, words, *hexOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		b := img.Bounds()
		fmt.Printf("OK  %s -> %s  (%dx%d, %d texels)\n", flag.Arg(0), *outPath, b.Dx(), b.Dy(), len(words))
	}
}

func source(arg string) (image.Image, error) {
	if arg == "quadrants" {
		return texture.Quadrants(texture.QuadrantSize), nil
	}
	return texture.Load(arg)
}

func write(w io.Writer, words []uint16, hex bool) error {
	bw := bufio.NewWriter(w)
	if hex {
		for _, v := range words {
			if _, err := fmt.Fprintf(bw, "%04X\n", v); err != nil {
				return err
			}
		}
	} else if err := binary.Write(bw, binary.LittleEndian, words); err != nil {
		return err
	}
	return bw.Flush()
}
