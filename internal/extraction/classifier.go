package extraction

import "strings"

// typeRule maps a keyword group to a category label
type typeRule struct {
	keywords []string
	label    string
}

// typeRules is checked in order and the first matching rule wins. The order
// is load-bearing for overlapping keywords (a "smart watch with phone
// features" classifies by whichever rule is reached first), so the list must
// stay stable to keep classification deterministic.
var typeRules = []typeRule{
	// Electronics & computing
	{[]string{"laptop", "macbook", "notebook", "computer"}, "Laptop"},
	{[]string{"phone", "iphone", "smartphone", "mobile"}, "Smartphone"},
	{[]string{"tablet", "ipad"}, "Tablet"},
	{[]string{"mouse", "mice"}, "Computer Mouse"},
	{[]string{"keyboard"}, "Keyboard"},
	{[]string{"monitor", "display", "screen"}, "Monitor"},
	{[]string{"headphone", "earphone", "earbuds", "airpods"}, "Audio Device"},
	{[]string{"speaker", "bluetooth"}, "Speaker"},
	{[]string{"camera", "webcam"}, "Camera"},
	{[]string{"watch", "smartwatch"}, "Smart Watch"},
	{[]string{"cable", "charger", "adapter", "dongle"}, "Accessory"},
	{[]string{"drive", "storage", "ssd", "hdd"}, "Storage Device"},
	{[]string{"router", "modem", "wifi"}, "Network Device"},

	// Home & appliances
	{[]string{"tv", "television"}, "Television"},
	{[]string{"refrigerator", "fridge"}, "Refrigerator"},
	{[]string{"microwave", "oven"}, "Kitchen Appliance"},
	{[]string{"washer", "dryer", "washing"}, "Laundry Appliance"},
	{[]string{"vacuum", "cleaner"}, "Cleaning Appliance"},

	// Gaming
	{[]string{"xbox", "playstation", "nintendo", "console"}, "Gaming Console"},
	{[]string{"controller", "gamepad"}, "Gaming Controller"},
}

// ProductType maps a free-text product name to a coarse category label.
// It is a pure, total function: it never fails and always returns a
// non-empty label, defaulting to "Electronics".
func ProductType(productName string) string {
	name := strings.ToLower(productName)

	for _, rule := range typeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				return rule.label
			}
		}
	}

	// Video games need a two-keyword match, so they sit outside the rule table
	if strings.Contains(name, "game") && (strings.Contains(name, "video") || strings.Contains(name, "disc")) {
		return "Video Game"
	}

	return "Electronics"
}
