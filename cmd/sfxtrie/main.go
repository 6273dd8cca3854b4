package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/miajio/sfxtrie/internal/config"
	"github.com/miajio/sfxtrie/pkg/badger"
	"github.com/miajio/sfxtrie/pkg/participle"
)

const usage = `sfxtrie - prefix lookups over a word dictionary

Usage:
  sfxtrie [flags] <command> [arguments]

Commands:
  add <word>...       add words to the dictionary
  find <prefix>       list the remaining parts of words starting with prefix
  learn <file|->      learn new words from a text file or stdin
  segment <text>      print the segmented tokens of text
  list                print the dictionary in insertion order
  backup <file>       back up the dictionary store
  restore <file>      append the words of a backup to the dictionary

Flags:
`

// errNotFound find未找到前缀
var errNotFound = errors.New("prefix not found")

var knownCommands = map[string]bool{
	"add": true, "find": true, "learn": true, "segment": true,
	"list": true, "backup": true, "restore": true,
}

// extraOptions 测试时替换分词器
var extraOptions []participle.Option

func main() {
	fs := flag.NewFlagSet("sfxtrie", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a config file")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(cfg.LogLevel()).With().Timestamp().Logger()

	if err := run(cfg, fs.Args(), os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errNotFound) {
			os.Exit(1)
		}
		log.Fatal().Err(err).Str("command", fs.Arg(0)).Msg("command failed")
	}
}

// openStore 按配置打开词典存储
func openStore(cfg *config.Config) (*badger.Engine, error) {
	var (
		store *badger.Engine
		err   error
	)
	if cfg.Store.InMemory {
		store, err = badger.InMemory()
	} else {
		store, err = badger.Default(cfg.Store.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	store.SetGCInterval(cfg.Store.GCInterval)
	return store, nil
}

// run 执行一条命令
func run(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}
	cmd, args := args[0], args[1:]
	if !knownCommands[cmd] {
		return fmt.Errorf("unknown command %q", cmd)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	// backup只操作存储
	if cmd == "backup" {
		defer store.Close()
		if len(args) != 1 {
			return errors.New("backup requires exactly one file")
		}
		return store.Backup(args[0])
	}

	opts := append([]participle.Option{participle.WithStore(store), participle.WithLogger(log.Logger)}, extraOptions...)
	engine, err := participle.New(opts...)
	if err != nil {
		store.Close()
		return err
	}
	defer engine.Close()

	for _, word := range cfg.Dictionary.Words {
		if !engine.Contains(word) {
			if err := engine.AddWord(word, participle.DefaultFrequency, participle.DefaultPos); err != nil {
				return err
			}
		}
	}

	switch cmd {
	case "add":
		if len(args) == 0 {
			return errors.New("add requires at least one word")
		}
		return engine.AddWords(args)

	case "find":
		if len(args) != 1 {
			return errors.New("find requires exactly one prefix")
		}
		suffixes, ok := engine.Suggest(args[0])
		if !ok {
			fmt.Fprintf(stdout, "no words start with %q\n", args[0])
			return errNotFound
		}
		for _, s := range suffixes {
			fmt.Fprintln(stdout, s)
		}
		return nil

	case "learn":
		if len(args) != 1 {
			return errors.New("learn requires a file or -")
		}
		text, err := readInput(args[0], stdin)
		if err != nil {
			return err
		}
		learned, err := engine.LearnFromText(text)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "learned %d new words\n", len(learned))
		return nil

	case "segment":
		fmt.Fprintln(stdout, strings.Join(engine.Segment(strings.Join(args, " ")), "/"))
		return nil

	case "restore":
		if len(args) != 1 {
			return errors.New("restore requires exactly one file")
		}
		n, err := restore(engine, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "restored %d words\n", n)
		return nil

	case "list":
		fmt.Fprintln(stdout, engine.String())
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// restore 将备份载入临时内存存储, 再追加到当前词典
func restore(engine *participle.Engine, file string) (int, error) {
	tmp, err := badger.InMemory()
	if err != nil {
		return 0, fmt.Errorf("open restore store: %w", err)
	}
	defer tmp.Close()

	if err := tmp.Load(file); err != nil {
		return 0, err
	}
	return engine.Import(tmp)
}

// readInput 读取文件, "-"表示标准输入
func readInput(name string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
