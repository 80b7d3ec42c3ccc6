package seed

type brandSeed struct {
	id          int64
	name        string
	description string
	logo        string
	website     string
}

var brandSeeds = []brandSeed{
	{1, "Nike", "American multinational corporation that designs, develops, manufactures, and markets footwear, apparel, equipment, and accessories worldwide.", "nike", "https://www.nike.com"},
	{2, "Adidas", "German multinational corporation that designs and manufactures shoes, clothing and accessories.", "adidas", "https://www.adidas.com"},
	{3, "Puma", "German multinational corporation that designs and manufactures athletic and casual footwear, apparel and accessories.", "puma", "https://www.puma.com"},
	{4, "New Balance", "American multinational corporation that designs and manufactures athletic footwear and apparel.", "new_balance", "https://www.newbalance.com"},
	{5, "Converse", "American shoe company that designs, distributes, and licenses sneakers, skating shoes, lifestyle brand footwear, apparel, and accessories.", "converse", "https://www.converse.com"},
	{6, "Reebok", "Global athletic footwear and apparel company, producing and distributing fitness, running and CrossFit sportswear.", "reebok", "https://www.reebok.com"},
	{7, "Vans", "American manufacturer of skateboarding shoes and related apparel, started in California.", "vans", "https://www.vans.com"},
	{8, "ASICS", "Japanese multinational corporation that produces footwear and sports equipment designed for a wide range of sports.", "asics", "https://www.asics.com"},
	{9, "Saucony", "American manufacturer of athletic shoes, known for their running shoes.", "saucony", "https://www.saucony.com"},
	{10, "Under Armour", "American sports equipment company that manufactures footwear, sports and casual apparel.", "under_armour", "https://www.underarmour.com"},
	{11, "Brooks", "American sports equipment company that designs and markets high-performance running shoes and apparel.", "brooks", "https://www.brooksrunning.com"},
	{12, "Timberland", "American manufacturer and retailer of outdoors wear, with a focus on footwear.", "timberland", "https://www.timberland.com"},
}

type categorySeed struct {
	id          int64
	name        string
	description string
	parent      int64
}

var categorySeeds = []categorySeed{
	{1, "Athletic", "Shoes designed for sports and athletic activities", 0},
	{2, "Casual", "Everyday comfortable shoes for casual wear", 0},
	{3, "Formal", "Elegant shoes for formal occasions and business wear", 0},
	{4, "Outdoor", "Durable shoes for outdoor activities and adventures", 0},
	{5, "Special Purpose", "Shoes designed for specific activities or environments", 0},
	{6, "Running", "Shoes designed for running with cushioning and support", 1},
	{7, "Basketball", "High-top shoes with ankle support for basketball", 1},
	{8, "Soccer", "Cleats and shoes designed for soccer play", 1},
	{9, "Training", "Versatile shoes for gym workouts and cross-training", 1},
	{10, "Tennis", "Shoes with lateral support for tennis courts", 1},
	{11, "Sneakers", "Casual athletic-inspired shoes for everyday wear", 2},
	{12, "Slip-Ons", "Easy to wear shoes without laces", 2},
	{13, "Sandals", "Open shoes with straps for warm weather", 2},
	{14, "Loafers", "Slip-on shoes with a moccasin-like construction", 2},
	{15, "Oxfords", "Classic lace-up dress shoes", 3},
	{16, "Derbies", "Less formal lace-up dress shoes with open lacing", 3},
	{17, "Monk Straps", "Formal shoes with buckle closure instead of laces", 3},
	{18, "Dress Boots", "Formal boots suitable for business attire", 3},
	{19, "Hiking Boots", "Rugged boots for trail hiking and outdoor adventures", 4},
	{20, "Work Boots", "Durable boots for construction and industrial work", 4},
	{21, "Trail Running", "Running shoes designed for off-road terrain", 4},
	{22, "Winter Boots", "Insulated boots for cold weather protection", 4},
	{23, "Cycling", "Shoes designed for cycling with stiff soles", 5},
	{24, "Golf", "Shoes with spikes or traction for golfing", 5},
	{25, "Skateboarding", "Durable shoes with flat soles for skateboarding", 5},
	{26, "Dance", "Specialized shoes for various dance styles", 5},
}

type productTemplate struct {
	name        string
	gender      string
	description string
}

type templateGroup struct {
	categoryID int64
	templates  []productTemplate
}

// productTemplates is keyed by brand name; groups keep their generation order.
var productTemplates = map[string][]templateGroup{
	"Nike": {
		{6, []productTemplate{
			{"Air Zoom Pegasus", "Men", "Responsive cushioning for your daily runs."},
			{"ZoomX Invincible Run", "Women", "Maximum cushioning for long-distance comfort."},
			{"Air Zoom Tempo", "Men", "Responsive and fast for tempo runs and race day."},
			{"React Infinity Run", "Women", "Designed to help reduce injury with smooth transitions."},
		}},
		{7, []productTemplate{
			{"LeBron Witness", "Men", "Responsive cushioning and support for the court."},
			{"Kyrie Flytrap", "Men", "Quick cuts and responsive feel for dynamic players."},
			{"Zoom Freak", "Men", "Designed for versatile forwards with responsive cushioning."},
		}},
		{11, []productTemplate{
			{"Air Force 1", "Men", "Classic style with premium leather upper."},
			{"Air Max 90", "Women", "Iconic design with visible Air cushioning."},
			{"Blazer Mid", "Men", "Vintage basketball style for everyday wear."},
		}},
	},
	"Adidas": {
		{6, []productTemplate{
			{"Ultraboost", "Men", "Responsive Boost cushioning for energy return."},
			{"Supernova", "Women", "Balanced cushioning for everyday training runs."},
			{"Adizero Adios", "Men", "Lightweight and fast for race day performance."},
		}},
		{8, []productTemplate{
			{"Predator Edge", "Men", "Enhanced ball control and striking power."},
			{"X Speedflow", "Men", "Ultralight speed for the fastest players."},
			{"Copa Sense", "Men", "Premium touch and comfort for technical players."},
		}},
		{11, []productTemplate{
			{"Stan Smith", "Women", "Classic tennis style with a clean, minimalist design."},
			{"Superstar", "Men", "Iconic shell toe design that's been a staple since 1970."},
			{"Gazelle", "Women", "Vintage trainer with a sleek profile."},
		}},
	},
}

// featureGroups maps a category id to the feature list its products draw from.
var featureGroups = map[int64]string{
	6:  "Running",
	7:  "Basketball",
	9:  "Training",
	11: "Casual",
	19: "Hiking",
}

var featureDescriptions = map[string][]string{
	"Running": {
		"Responsive cushioning for a smooth ride",
		"Breathable mesh upper keeps feet cool",
		"Strategic rubber placement for durability and traction",
		"Heel collar wraps ankle for comfortable fit",
		"Reflective details for visibility in low light",
		"Flexible grooves allow natural foot movement",
	},
	"Basketball": {
		"Zoom Air units provide responsive cushioning",
		"High-top design offers ankle support",
		"Multidirectional traction pattern for court grip",
		"Reinforced toe cap for durability",
		"Padded collar for comfort during play",
		"Lightweight design for quick movements",
	},
	"Training": {
		"Stable base for lifting weights",
		"Responsive cushioning for high-intensity workouts",
		"Durable upper for lateral movements",
		"Flexible forefoot for natural movement",
		"Extra grippy outsole for indoor surfaces",
	},
	"Casual": {
		"Classic design for everyday style",
		"Cushioned insole for all-day comfort",
		"Durable construction for long-lasting wear",
		"Versatile design pairs with multiple outfits",
		"Iconic silhouette with heritage details",
	},
	"Hiking": {
		"Waterproof membrane keeps feet dry",
		"Aggressive outsole pattern for trail traction",
		"Protective toe cap for rocky terrain",
		"Supportive midsole for long hikes",
		"Gusseted tongue keeps debris out",
	},
}

const careInstructions = "Wipe clean with a damp cloth. Air dry only. Do not machine wash."
