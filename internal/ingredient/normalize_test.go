package ingredient

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		key     string
		display string
	}{
		{"QualifierAndMeasure", "2 cloves minced garlic", "garlic", "Garlic"},
		{"PluralWithUnit", "1 cup Tomatoes", "tomato", "Tomato"},
		{"TrailingQualifier", "large boneless chicken breast, diced", "chicken breast", "Chicken breast"},
		{"PluralLastWord", "chicken breasts", "chicken breast", "Chicken breast"},
		{"IesPlural", "2 red berries", "red berry", "Red berry"},
		{"ExceptionWord", "hummus", "hummus", "Hummus"},
		{"Fraction", "1/2 tsp salt", "salt", "Salt"},
		{"Whitespace", "  Fresh   Spinach  ", "spinach", "Spinach"},
		{"AlreadyClean", "olive oil", "olive oil", "Olive oil"},
		{"Empty", "", "", ""},
		{"OnlyQuantity", "2 cups", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got.Key != tc.key {
				t.Errorf("Normalize(%q).Key = %q, want %q", tc.raw, got.Key, tc.key)
			}
			if got.Display != tc.display {
				t.Errorf("Normalize(%q).Display = %q, want %q", tc.raw, got.Display, tc.display)
			}
		})
	}
}

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"tomatoes":  "tomato",
		"potatoes":  "potato",
		"berries":   "berry",
		"eggs":      "egg",
		"breasts":   "breast",
		"dishes":    "dish",
		"boxes":     "box",
		"asparagus": "asparagus",
		"couscous":  "couscous",
		"glass":     "glass",
		"rice":      "rice",
	}
	for in, want := range cases {
		if got := Singularize(in); got != want {
			t.Errorf("Singularize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key("  Chicken   Breast "); got != "chicken breast" {
		t.Errorf("Key collapsed form = %q, want %q", got, "chicken breast")
	}
}
