// Command qoiconv encodes and decodes qoipix images from the command line.
//
// Usage:
//
//	qoiconv encode [options] <input>        PNG/JPEG/BMP → qoipix (use "-" for stdin)
//	qoiconv decode [options] <input.qoi>    qoipix → PNG/BMP (use "-" for stdin, -o - for stdout)
//	qoiconv info <input.qoi>                Display header fields
//	qoiconv batch [options] <dir>           Convert a directory of images
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "qoiconv",
		Short:         "Encode and decode qoipix images",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newBatchCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("qoiconv failed")
		os.Exit(1)
	}
}

// openInput returns an io.ReadCloser for path, reading stdin when path is
// "-", the same convention the teacher's gwebp CLI uses.
func openInput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func closeIfNotStd(f *os.File) {
	if f != os.Stdin && f != os.Stdout {
		f.Close()
	}
}
