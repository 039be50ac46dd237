// Package category assigns a spending category to a receipt line description.
package category

import "strings"

// Category is a spending category tag
type Category string

const (
	FoodAndDrinks        Category = "food & drinks"
	TravelAndTransport   Category = "travel & transport"
	OfficeAndSupplies    Category = "office & supplies"
	UtilitiesAndBills    Category = "utilities & bills"
	ElectronicsAndGadget Category = "electronics & gadgets"
	HealthcareAndPharma  Category = "healthcare & pharmacy"
	EntertainmentMedia   Category = "entertainment & media"
	ShoppingAndFashion   Category = "shopping & fashion"
	HomeAndGroceries     Category = "home & groceries"
	EducationLearning    Category = "education & learning"
	PersonalCare         Category = "personal care"
	SportsAndFitness     Category = "sports & fitness"
	FinancialServices    Category = "financial services"
	HousingAndRent       Category = "housing & rent"
	Others               Category = "others"
	Uncategorized        Category = "uncategorized"
)

type rule struct {
	category Category
	keywords []string
}

// rules is evaluated top to bottom. Keyword sets overlap ("mouse", "notebook",
// "tablet", "gym" ...), so the order decides those ties and must not change.
var rules = []rule{
	{FoodAndDrinks, []string{
		"restaurant", "grocery", "meal", "dinner", "lunch", "breakfast", "cafe",
		"coffee", "cappuccino", "latte", "espresso", "muffin", "pastry", "croissant",
		"snack", "burger", "pizza", "sandwich", "cake", "bakery", "donut", "cookie",
		"juice", "beverage", "drink", "milk", "apples", "fruits", "vegetables",
		"meat", "chicken", "fish", "beef", "pork", "rice", "pasta", "noodles",
		"biryani", "thali", "paratha", "samosa", "pakora", "tea",
	}},
	{TravelAndTransport, []string{
		"taxi", "cab", "uber", "ola", "hotel", "motel", "resort", "hostel", "airbnb",
		"flight", "airlines", "indigo", "emirates", "spicejet", "train", "railway",
		"bus", "metro", "tram", "ferry", "toll", "parking", "fuel", "diesel", "petrol",
		"gasoline", "car rental", "bike rental", "driver",
	}},
	{OfficeAndSupplies, []string{
		"paper", "pen", "printer", "stationery", "office", "supplies", "notebook",
		"stapler", "folder", "file", "highlighter", "marker", "ink", "toner",
		"eraser", "board", "whiteboard", "chair", "desk", "furniture",
	}},
	{UtilitiesAndBills, []string{
		"electricity", "power", "water", "gas", "internet", "wifi", "broadband",
		"phone", "mobile", "cell", "bill", "recharge", "cable", "dth", "telecom",
		"airtel", "jio", "vodafone", "bsnl",
	}},
	{ElectronicsAndGadget, []string{
		"headphones", "earphones", "airpods", "speakers", "laptop", "computer", "pc",
		"desktop", "monitor", "keyboard", "mouse", "charger", "adapter", "mobile",
		"tablet", "smartphone", "tv", "television", "camera", "dslr", "microwave",
		"fridge", "washing machine", "ac", "fan",
	}},
	{HealthcareAndPharma, []string{
		"doctor", "hospital", "clinic", "pharmacy", "chemist", "medicine", "tablet",
		"capsule", "syrup", "injection", "surgery", "xray", "mri", "scan",
		"health", "wellness", "dental", "dentist", "optical", "eyewear", "spectacles",
		"contact lens", "mask", "sanitizer", "thermometer",
	}},
	{EntertainmentMedia, []string{
		"movie", "cinema", "theater", "netflix", "prime video", "spotify", "youtube",
		"music", "concert", "game", "gaming", "playstation", "xbox", "nintendo",
		"book", "novel", "magazine", "newspaper", "event", "show", "ticket",
	}},
	{ShoppingAndFashion, []string{
		"clothes", "dress", "shirt", "tshirt", "jeans", "pants", "trousers", "jacket",
		"sweater", "hoodie", "kurta", "saree", "lehenga", "salwar", "shoes", "sandals",
		"sneakers", "boots", "flipflops", "bag", "purse", "handbag", "wallet",
		"watch", "belt", "cap", "hat", "sunglasses", "jewelry", "ring", "necklace",
		"bracelet", "earrings", "cosmetics", "makeup", "lipstick", "perfume", "beauty",
	}},
	{HomeAndGroceries, []string{
		"detergent", "soap", "shampoo", "toothpaste", "toothbrush", "cleaner",
		"dishwash", "floor cleaner", "phenyl", "mop", "broom", "utensil",
		"spices", "oil", "salt", "sugar", "flour", "atta", "dal", "beans", "cereal",
	}},
	{EducationLearning, []string{
		"school", "college", "university", "fees", "exam", "coaching", "tuition",
		"course", "online course", "udemy", "coursera", "byjus", "textbook",
		"notebook", "stationery", "library", "training", "class", "mouse",
	}},
	{PersonalCare, []string{
		"salon", "spa", "parlor", "barber", "haircut", "massage", "facial",
		"cream", "lotion", "skincare", "nail", "manicure", "pedicure",
	}},
	{SportsAndFitness, []string{
		"gym", "fitness", "workout", "yoga", "zumba", "trainer", "cricket", "bat",
		"ball", "football", "basketball", "tennis", "racket", "shuttle", "jersey",
		"cycle", "bicycle", "helmet", "sports shoes", "treadmill", "dumbbell",
	}},
	{FinancialServices, []string{
		"bank", "atm", "loan", "emi", "insurance", "mutual fund", "policy",
		"lic", "sip", "investment", "credit card", "debit card", "upi",
		"paytm", "gpay", "phonepe", "stripe", "paypal",
	}},
	{HousingAndRent, []string{
		"rent", "lease", "apartment", "flat", "villa", "pg", "guesthouse",
		"maintenance", "society", "property", "brokerage",
	}},
	{Others, []string{
		"gift", "donation", "charity", "subscription", "membership", "miscellaneous", "gym",
	}},
}

// Categorize returns the first category, in table order, with a keyword contained
// in the description. Matching is case-insensitive on substrings.
func Categorize(description string) Category {
	desc := strings.ToLower(description)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(desc, k) {
				return r.category
			}
		}
	}
	return Uncategorized
}

// All returns every category in table order, followed by Uncategorized
func All() []Category {
	all := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		all = append(all, r.category)
	}
	return append(all, Uncategorized)
}
