package seed

var (
	menSizes   = []string{"6", "6.5", "7", "7.5", "8", "8.5", "9", "9.5", "10", "10.5", "11", "11.5", "12", "12.5", "13", "14", "15"}
	womenSizes = []string{"5", "5.5", "6", "6.5", "7", "7.5", "8", "8.5", "9", "9.5", "10", "10.5", "11"}
	kidsSizes  = []string{"1", "1.5", "2", "2.5", "3", "3.5", "4", "4.5", "5", "5.5", "6", "6.5"}
)

func sizesFor(gender string) []string {
	switch gender {
	case "Women":
		return womenSizes
	case "Kids":
		return kidsSizes
	default:
		return menSizes
	}
}

type color struct {
	name string
	hex  string
}

var colors = []color{
	{"Black", "#000000"},
	{"White", "#FFFFFF"},
	{"Red", "#FF0000"},
	{"Blue", "#0000FF"},
	{"Navy", "#000080"},
	{"Grey", "#808080"},
	{"Green", "#008000"},
	{"Yellow", "#FFFF00"},
	{"Purple", "#800080"},
	{"Pink", "#FFC0CB"},
	{"Orange", "#FFA500"},
	{"Brown", "#A52A2A"},
	{"Tan", "#D2B48C"},
	{"Teal", "#008080"},
	{"Olive", "#808000"},
	{"Beige", "#F5F5DC"},
}

var materials = []string{
	"Leather",
	"Synthetic Leather",
	"Canvas",
	"Mesh",
	"Knit",
	"Suede",
	"Nylon",
	"Polyester",
	"Gore-Tex",
	"Rubber",
	"Cotton",
	"Neoprene",
	"Wool",
	"Fleece",
}

var customerNames = []string{
	"John S.", "Emma W.", "Michael T.", "Sarah L.", "David B.",
	"Jessica H.", "Daniel K.", "Rachel G.", "Robert F.", "Lisa M.",
	"Chris P.", "Olivia N.", "James O.", "Sophia R.", "Thomas S.",
	"Emily T.", "William H.", "Ava J.", "Joseph C.", "Madison D.",
	"Alexander K.", "Chloe L.", "Ryan M.", "Grace N.", "Noah P.",
	"Hannah Q.", "Ethan R.", "Lily S.", "Kevin T.", "Zoe U.",
}

// Review templates use %s as the product name placeholder; some omit it.
var (
	positiveReviews = []string{
		"Love these %s! They are so comfortable and stylish.",
		"Best shoes I've ever owned. The %s exceeded my expectations.",
		"Great quality and fit perfectly. Would definitely buy the %s again.",
		"These %s are amazing for the price. Highly recommend!",
		"Super comfortable from day one. No breaking in needed for these %s.",
		"The %s look even better in person than in the photos.",
		"Perfect fit and very durable. These %s are worth every penny.",
		"I get compliments every time I wear these %s.",
	}
	neutralReviews = []string{
		"The %s are decent. Not amazing but good for the price.",
		"Comfortable but not as durable as I'd hoped the %s would be.",
		"Good looking shoes but took some time to break in.",
		"The %s fit as expected but the color is slightly different than pictured.",
		"Satisfied with my purchase but nothing exceptional about these %s.",
		"Good everyday shoes. The %s serve their purpose well.",
	}
	negativeReviews = []string{
		"Disappointed with these %s. They started falling apart after just a few weeks.",
		"The fit is off on these %s. Had to return them.",
		"Not comfortable at all. Wouldn't recommend these %s.",
		"The quality doesn't match the price. Expected better from these %s.",
		"The color of the %s was completely different than what was shown online.",
		"These run much smaller than expected. Size up if you buy the %s.",
	}
)

// ratingWeights are the relative odds of 1 through 5 stars.
var ratingWeights = []float64{0.05, 0.1, 0.15, 0.3, 0.4}

type priceRange struct{ min, max float64 }

var defaultPriceRange = priceRange{60, 180}

var categoryPriceRanges = map[int64]priceRange{
	1:  {80, 200},
	6:  {100, 180},
	7:  {120, 220},
	8:  {80, 180},
	9:  {70, 150},
	10: {90, 160},
	2:  {50, 150},
	11: {60, 120},
	12: {40, 100},
	13: {30, 80},
	14: {70, 140},
	3:  {100, 300},
	15: {150, 350},
	16: {120, 280},
	17: {130, 290},
	18: {160, 380},
	4:  {90, 250},
	19: {120, 280},
	20: {110, 250},
	21: {110, 220},
	22: {130, 300},
	5:  {80, 200},
	23: {120, 300},
	24: {100, 220},
	25: {70, 150},
	26: {60, 140},
}

var (
	warehouses   = []string{"main", "east", "west"}
	aisles       = []string{"A", "B", "C", "D"}
	archSupports = []string{"Neutral", "Support", "Minimal"}
	closures     = []string{"Lace-up", "Slip-on", "Hook-and-loop", "Buckle"}
	outsoles     = []string{"Rubber", "Carbon rubber", "Blown rubber", "Gum rubber"}
	midsoles     = []string{"EVA", "Foam", "React", "Boost", "Gel", "Air"}
)
