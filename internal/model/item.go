package model

import "encoding/json"

// Item is a serialized item stack, usually the weapon of a damage.
type Item struct {
	ID    string   `json:"id"`
	Count int      `json:"Count"`
	Tag   *ItemTag `json:"tag,omitempty"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	p := plain{Count: 1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Item(p)
	return nil
}

type ItemTag struct {
	Unbreakable         bool           `json:"Unbreakable,omitempty"`
	Enchantments        []Enchantment  `json:"Enchantments,omitempty"`
	StoredEnchantments  []Enchantment  `json:"StoredEnchantments,omitempty"`
	CustomPotionEffects []PotionEffect `json:"CustomPotionEffects,omitempty"`
	Potion              string         `json:"Potion,omitempty"`
	Display             *ItemDisplay   `json:"display,omitempty"`
}

type Enchantment struct {
	ID    string `json:"id"`
	Level int    `json:"lvl"`
}

type PotionEffect struct {
	ID        int `json:"Id"`
	Amplifier int `json:"Amplifier"`
	Duration  int `json:"Duration"`
}

type ItemDisplay struct {
	Name string   `json:"Name,omitempty"`
	Lore []string `json:"Lore,omitempty"`
}
