package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/equex/log"
)

func Example_text() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Trace("convert", slog.String("expr", "2+3*4"), slog.String("postfix", "2 3 4 * +"))
	// Output: level=TRACE msg=convert expr=2+3*4 postfix="2 3 4 * +"
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none")).
		With(slog.String("file", "zad.txt"))

	logger.Info("not shown at the default level")
	logger.Warn("unknown has no value", slog.String("name", "x"))
	// Output: level=WARN msg=unknown has no value file=zad.txt name=x
}
