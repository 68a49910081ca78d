package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	moneyfield "github.com/goliatone/go-moneyfield"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig loggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "warn"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "console"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	configLocation := flag.String("config", "", "path to YAML configuration file")
	currencyFlag := flag.String("currency", "", "ISO 4217 currency code (default USD)")
	localeFlag := flag.String("locale", "", "display locale override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	patternFlag := flag.String("pattern", "", "number pattern for the currency, e.g. \"$\"#,##0.00")
	interactive := flag.Bool("interactive", false, "edit an amount in the terminal")
	flag.Parse()

	conf := &fileConfig{}
	if *configLocation != "" {
		loaded, err := loadConfiguration(*configLocation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			os.Exit(1)
		}
		conf = loaded
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	currencyCode := conf.Currency
	if *currencyFlag != "" {
		currencyCode = *currencyFlag
	}
	if currencyCode == "" {
		currencyCode = "USD"
	}
	if *localeFlag != "" {
		conf.Locale = *localeFlag
	}
	if *patternFlag != "" {
		if conf.Patterns == nil {
			conf.Patterns = make(map[string]string)
		}
		conf.Patterns[currencyCode] = *patternFlag
	}

	opts, err := conf.options()
	if err != nil {
		logger.Fatal("invalid configuration", zap.String("op", "main"), zap.Error(err))
	}
	opts = append(opts, moneyfield.WithLogger(logger))

	cfg, err := moneyfield.NewConfig(opts...)
	if err != nil {
		logger.Fatal("failed to build configuration", zap.String("op", "main"), zap.Error(err))
	}

	field, err := cfg.NewField(currencyCode)
	if err != nil {
		logger.Fatal("failed to create field",
			zap.String("op", "main"),
			zap.String("currency", currencyCode),
			zap.String("locale", cfg.Locale),
			zap.Error(err),
		)
	}

	if *interactive {
		screen, err := tcell.NewScreen()
		if err != nil {
			logger.Fatal("failed to open terminal", zap.String("op", "main"), zap.Error(err))
		}
		if err := screen.Init(); err != nil {
			logger.Fatal("failed to initialize terminal", zap.String("op", "main"), zap.Error(err))
		}
		runErr := runField(screen, field, logger)
		screen.Fini()
		if runErr != nil {
			logger.Fatal("interactive field failed", zap.String("op", "main"), zap.Error(runErr))
		}
		fmt.Println(field.Value())
		return
	}

	for _, value := range flag.Args() {
		if err := describe(os.Stdout, field.Transformation(), value); err != nil {
			logger.Error("failed to format value", zap.String("op", "main"), zap.String("value", value), zap.Error(err))
		}
	}
}

// describe prints the formatted text, the part ranges and both offset tables.
func describe(w io.Writer, transformation *moneyfield.Transformation, raw string) error {
	text, err := transformation.Transform(raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%q -> %q\n", raw, text.Text())
	if text.Identity {
		fmt.Fprintln(w, "  not a number, shown as typed")
		return nil
	}

	r := text.Ranges
	fmt.Fprintf(w, "  integer [%d, %d) fraction [%d, %d) decimal %d symbol [%d, %d)\n",
		r.IntegerPart.Start, r.IntegerPart.End,
		r.FractionPart.Start, r.FractionPart.End,
		r.DecimalSeparatorIndex,
		r.CurrencySymbol.Start, r.CurrencySymbol.End,
	)

	if bounded, ok := text.Mapping.(moneyfield.BoundedMapping); ok {
		fmt.Fprintf(w, "  original->transformed %v\n", moneyfield.OriginalTable(bounded))
		fmt.Fprintf(w, "  transformed->original %v\n", moneyfield.TransformedTable(bounded))
	}
	return nil
}
