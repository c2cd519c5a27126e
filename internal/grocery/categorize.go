package grocery

import "strings"

// keywordRule maps a set of substrings to a category. Rules are evaluated in
// order and the first match wins, so produce keywords shadow meat keywords
// and so on down the list.
type keywordRule struct {
	category Category
	keywords []string
}

// English and Chinese keyword lists are kept separate but checked in the same
// priority order. Categorization is a pure function of the name: same input,
// same category, no external calls.
var rules = []keywordRule{
	{CategoryProduce, []string{
		"tomato", "potato", "onion", "garlic", "ginger", "carrot", "celery",
		"pepper", "chili", "broccoli", "spinach", "lettuce", "cabbage",
		"cucumber", "zucchini", "mushroom", "corn", "pea", "bean sprout",
		"scallion", "green onion", "leek", "cilantro", "parsley", "basil",
		"kale", "avocado", "apple", "banana", "orange", "lemon", "lime",
		"berry", "grape", "mango", "peach", "pear", "pineapple", "melon",
		"eggplant", "squash", "asparagus", "radish", "bok choy", "lettuce",
		"fruit", "vegetable",
	}},
	{CategoryProduce, []string{
		"番茄", "西红柿", "土豆", "马铃薯", "洋葱", "大蒜", "蒜", "姜",
		"胡萝卜", "芹菜", "辣椒", "青椒", "西兰花", "菠菜", "生菜", "白菜",
		"黄瓜", "蘑菇", "香菇", "玉米", "豆芽", "葱", "韭菜", "香菜",
		"苹果", "香蕉", "橙", "柠檬", "葡萄", "芒果", "梨", "菜", "果",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "duck", "bacon", "ham",
		"sausage", "steak", "fish", "salmon", "tuna", "shrimp", "prawn",
		"crab", "lobster", "scallop", "squid", "anchovy", "meatball",
		"ground meat", "mince",
	}},
	{CategoryMeat, []string{
		"鸡肉", "鸡胸", "鸡腿", "鸡翅", "牛肉", "牛排", "猪肉", "排骨",
		"羊肉", "鸭肉", "鱼", "虾", "蟹", "培根", "火腿", "香肠", "肉",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "butter", "cream", "yogurt", "yoghurt", "egg",
		"mozzarella", "parmesan", "cheddar", "feta", "ricotta",
	}},
	{CategoryDairy, []string{
		"牛奶", "奶酪", "芝士", "黄油", "奶油", "酸奶", "蛋", "奶",
	}},
	{CategoryPantry, []string{
		"rice", "pasta", "noodle", "spaghetti", "flour", "sugar", "salt",
		"oil", "vinegar", "soy sauce", "sauce", "ketchup", "mustard",
		"mayonnaise", "honey", "syrup", "bread", "tortilla", "oat",
		"cereal", "bean", "lentil", "chickpea", "tofu", "nut", "almond",
		"peanut", "sesame", "spice", "cumin", "paprika", "cinnamon",
		"oregano", "thyme", "stock", "broth", "can", "hummus", "quinoa",
		"cornstarch", "baking",
	}},
	{CategoryPantry, []string{
		"米", "面", "面条", "面粉", "糖", "盐", "油", "醋", "酱油", "酱",
		"蜂蜜", "面包", "豆腐", "豆", "花生", "芝麻", "淀粉", "料酒",
		"胡椒粉", "五香粉", "高汤",
	}},
}

// Categorize classifies an ingredient or quick-food name into a shopping
// category. Matching is case-insensitive substring containment; when nothing
// matches the result is CategoryOther.
func Categorize(name string) Category {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return CategoryOther
	}
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(n, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
