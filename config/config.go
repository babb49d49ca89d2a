package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrConfig marks configuration values that cannot be used at all.
var ErrConfig = errors.New("invalid configuration")

type Config struct {
	Kuromoji      KuromojiConfig      `mapstructure:"kuromoji"`
	SpecialTokens SpecialTokensConfig `mapstructure:"specialtokens"`
	LogLevel      string              `mapstructure:"log_level"`
}

type KuromojiConfig struct {
	Mode          string        `mapstructure:"mode"`
	Kanji         PenaltyConfig `mapstructure:"kanji"`
	Other         PenaltyConfig `mapstructure:"other"`
	NakaguroSplit bool          `mapstructure:"nakaguro_split"`
	UserDict      string        `mapstructure:"user_dict"`
	TokenListName string        `mapstructure:"tokenlist_name"`
	AllLanguage   bool          `mapstructure:"all_language"`
	IgnoreCase    bool          `mapstructure:"ignore_case"`
	Dictionary    string        `mapstructure:"dictionary"`
}

type PenaltyConfig struct {
	LengthThreshold int `mapstructure:"length_threshold"`
	Penalty         int `mapstructure:"penalty"`
}

type SpecialTokensConfig struct {
	TokenList []TokenList `mapstructure:"tokenlist"`
}

// TokenList is a named collection of special tokens.
type TokenList struct {
	Name   string         `mapstructure:"name"`
	Tokens []SpecialToken `mapstructure:"tokens"`
}

type SpecialToken struct {
	Token   string `mapstructure:"token"`
	Replace string `mapstructure:"replace"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Kuromoji: KuromojiConfig{
			Mode: "search",
			Kanji: PenaltyConfig{
				LengthThreshold: 2,
				Penalty:         3000,
			},
			Other: PenaltyConfig{
				LengthThreshold: 7,
				Penalty:         1700,
			},
			NakaguroSplit: false,
			UserDict:      "",
			TokenListName: "default",
			AllLanguage:   false,
			IgnoreCase:    true,
			Dictionary:    "ipa",
		},
		LogLevel: "info",
	}
}

// TokenListNamed returns the token => replacement map of the named list. Lists
// sharing a name are merged in order.
func (c Config) TokenListNamed(name string) map[string]string {
	out := map[string]string{}
	for _, list := range c.SpecialTokens.TokenList {
		if list.Name != name {
			continue
		}
		for _, tok := range list.Tokens {
			out[tok.Token] = tok.Replace
		}
	}
	return out
}

// Validate rejects values no analyzer can be built from. An unknown mode is
// not an error here; it falls back to the default mode with a warning.
func (c Config) Validate() error {
	k := c.Kuromoji
	if k.Kanji.LengthThreshold < 0 || k.Kanji.Penalty < 0 {
		return fmt.Errorf("%w: kuromoji.kanji must not be negative", ErrConfig)
	}
	if k.Other.LengthThreshold < 0 || k.Other.Penalty < 0 {
		return fmt.Errorf("%w: kuromoji.other must not be negative", ErrConfig)
	}
	switch strings.ToLower(k.Dictionary) {
	case "", "ipa", "uni":
	default:
		return fmt.Errorf("%w: kuromoji.dictionary %q (want ipa or uni)", ErrConfig, k.Dictionary)
	}
	return nil
}

// flagKeys maps config keys to their command line flags.
var flagKeys = []struct{ key, flag string }{
	{"kuromoji.mode", "kuromoji-mode"},
	{"kuromoji.kanji.length_threshold", "kuromoji-kanji-length-threshold"},
	{"kuromoji.kanji.penalty", "kuromoji-kanji-penalty"},
	{"kuromoji.other.length_threshold", "kuromoji-other-length-threshold"},
	{"kuromoji.other.penalty", "kuromoji-other-penalty"},
	{"kuromoji.nakaguro_split", "kuromoji-nakaguro-split"},
	{"kuromoji.user_dict", "kuromoji-user-dict"},
	{"kuromoji.user_dict", "user-dict"},
	{"kuromoji.tokenlist_name", "kuromoji-tokenlist-name"},
	{"kuromoji.all_language", "kuromoji-all-language"},
	{"kuromoji.ignore_case", "kuromoji-ignore-case"},
	{"kuromoji.dictionary", "kuromoji-dictionary"},
	{"log_level", "log-level"},
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	k := defaults.Kuromoji
	fs.String("kuromoji-mode", k.Mode, "Analyzer mode: normal, search or extended")
	fs.Int("kuromoji-kanji-length-threshold", k.Kanji.LengthThreshold, "Kanji length threshold for the long token penalty")
	fs.Int("kuromoji-kanji-penalty", k.Kanji.Penalty, "Penalty for long kanji tokens")
	fs.Int("kuromoji-other-length-threshold", k.Other.LengthThreshold, "Length threshold for the long token penalty on other scripts")
	fs.Int("kuromoji-other-penalty", k.Other.Penalty, "Penalty for long tokens in other scripts")
	fs.Bool("kuromoji-nakaguro-split", k.NakaguroSplit, "Split unknown words on the katakana middle dot")
	fs.String("kuromoji-user-dict", k.UserDict, "Path to a user dictionary")
	fs.String("user-dict", k.UserDict, "Path to a user dictionary (alias for --kuromoji-user-dict)")
	fs.String("kuromoji-tokenlist-name", k.TokenListName, "Name of the special token list to use")
	fs.Bool("kuromoji-all-language", k.AllLanguage, "Use the Japanese analyzer for every language")
	fs.Bool("kuromoji-ignore-case", k.IgnoreCase, "Fold case before analysis")
	fs.String("kuromoji-dictionary", k.Dictionary, "System dictionary: ipa or uni")
	fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("JALING")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("jaling")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("kuromoji.mode", c.Kuromoji.Mode)
	v.SetDefault("kuromoji.kanji.length_threshold", c.Kuromoji.Kanji.LengthThreshold)
	v.SetDefault("kuromoji.kanji.penalty", c.Kuromoji.Kanji.Penalty)
	v.SetDefault("kuromoji.other.length_threshold", c.Kuromoji.Other.LengthThreshold)
	v.SetDefault("kuromoji.other.penalty", c.Kuromoji.Other.Penalty)
	v.SetDefault("kuromoji.nakaguro_split", c.Kuromoji.NakaguroSplit)
	v.SetDefault("kuromoji.user_dict", c.Kuromoji.UserDict)
	v.SetDefault("kuromoji.tokenlist_name", c.Kuromoji.TokenListName)
	v.SetDefault("kuromoji.all_language", c.Kuromoji.AllLanguage)
	v.SetDefault("kuromoji.ignore_case", c.Kuromoji.IgnoreCase)
	v.SetDefault("kuromoji.dictionary", c.Kuromoji.Dictionary)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each key to one flag. When a key has several flags, the one
// set on the command line wins.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bound := map[string]bool{}
	for _, changed := range []bool{true, false} {
		for _, fk := range flagKeys {
			if bound[fk.key] {
				continue
			}
			f := fs.Lookup(fk.flag)
			if f == nil || f.Changed != changed {
				continue
			}
			if err := v.BindPFlag(fk.key, f); err != nil {
				return fmt.Errorf("%s: %w", fk.flag, err)
			}
			bound[fk.key] = true
		}
	}
	return nil
}
