package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/jngu/ngubot/internal/domain"
)

// fileSchema is the typed shape of the alias-table section of the config
// file. Viper flattens TOML arrays-of-tables awkwardly, so this section is
// decoded directly.
type fileSchema struct {
	Aliases []aliasSchema `toml:"aliases"`
}

type aliasSchema struct {
	Handle string   `toml:"handle"`
	Names  []string `toml:"names"`
}

// loadAliasTable reads the [[aliases]] entries from the config file, if one
// was found. Without a file, or without entries, the built-in table for the
// home guild applies.
func loadAliasTable(configFile string) (domain.AliasTable, error) {
	if configFile == "" {
		return defaultAliases(), nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("read alias table: %w", err)
	}

	var schema fileSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode alias table: %w", err)
	}
	if len(schema.Aliases) == 0 {
		return defaultAliases(), nil
	}

	table := make(domain.AliasTable, len(schema.Aliases))
	for _, entry := range schema.Aliases {
		if entry.Handle == "" || len(entry.Names) == 0 {
			continue
		}
		table[entry.Handle] = entry.Names
	}

	return table, nil
}

// defaultAliases is the home guild's member name table: one English and one
// Thai name per Discord handle.
func defaultAliases() domain.AliasTable {
	return domain.AliasTable{
		"HappyBT":      {"Boss", "บอส"},
		"Dr. Feelgood": {"Pun", "ปั้น"},
		"padkapaow":    {"Tun", "ตั้น"},
		"BoonP1":       {"Boon", "บุ๋น"},
		"orengipratuu": {"Faye", "ฟาเย่"},
		"imminicosmic": {"Mini", "มินิ"},
		"keffv1":       {"Kevin", "เควิน"},
		"keyfungus":    {"Ngu", "งู"},
		"soybeant0fu":  {"Pookpik", "ปุ๊กปิ๊ก"},
		"ยักcute":      {"Geng", "เก่ง"},
		"ํืUnclejoe":     {"Aim", "เอม"},
	}
}
