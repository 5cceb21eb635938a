package domain

import (
	"math/rand/v2"
	"strings"
)

// Knowledge is the curated table backing both the rule-based fallback and
// domain enhancement. It is reference data, not catalog state: the canned
// responses stay valid even when the catalog store is unreachable.
var Knowledge = struct {
	Menu     []string
	Prices   []string
	Delivery []string
	Payment  []string
}{
	Menu: []string{
		"Margherita Pizza - Classic tomato and mozzarella",
		"Pepperoni Pizza - Spicy pepperoni with cheese",
		"Vegetarian Pizza - Fresh vegetables and cheese",
	},
	Prices: []string{
		"Margherita: $12.99",
		"Pepperoni: $14.99",
		"Vegetarian: $13.99",
	},
	Delivery: []string{
		"Standard delivery: 30-45 minutes",
		"Express delivery: 20-30 minutes (additional $3)",
		"Free delivery on orders over $25",
	},
	Payment: []string{
		"Cash on delivery",
		"Credit card",
		"Digital wallets accepted",
	},
}

// EnhancementFacts are the permitted suffixes for domain enhancement. One is
// appended at random when the user message references the catalog; variety is
// a usability choice, so callers must accept any member of this set.
var EnhancementFacts = []string{
	"Our menu has Margherita ($12.99), Pepperoni ($14.99) and Vegetarian ($13.99) pizzas.",
	"Standard delivery takes 30-45 minutes, or choose express for 20-30 minutes.",
	"Free delivery on orders over $25!",
	"We accept cash on delivery, credit card and digital wallets.",
	"Every pizza is made with fresh ingredients on our signature crust.",
}

var catalogKeywords = []string{
	"pizza", "menu", "margherita", "pepperoni", "vegetarian",
	"topping", "price", "delivery", "order", "payment",
}

func containsAny(message string, words []string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}

// Enhance post-processes a generated response: when the user message contains
// catalog-related keywords, one randomly selected fact from EnhancementFacts is
// appended. Otherwise the response passes through untouched.
func Enhance(responseText, userMessage string) string {
	if !containsAny(strings.ToLower(userMessage), catalogKeywords) {
		return responseText
	}
	fact := EnhancementFacts[rand.IntN(len(EnhancementFacts))]
	return responseText + " " + fact
}

// Fallback maps a user message to a canned response by keyword category. It is
// the backstop of last resort behind generation and never fails: unmatched
// input resolves to the default response.
func Fallback(userMessage string) string {
	msg := strings.ToLower(userMessage)

	switch {
	case containsAny(msg, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}):
		return "Hello! Welcome to Pizza Delivery! I can tell you about our menu, prices, delivery options, and help you place orders. What would you like to know today?"
	case containsAny(msg, []string{"menu", "available", "pizza", "what do you have"}):
		return "Here's our menu: " + strings.Join(Knowledge.Menu, "; ") + ". Which one sounds most delicious to you?"
	case containsAny(msg, []string{"price", "cost", "how much", "expensive", "cheap"}):
		return "Our pricing: " + strings.Join(Knowledge.Prices, "; ") + ". We also offer free delivery on orders over $25!"
	case containsAny(msg, []string{"delivery", "how long", "fast", "deliver"}):
		return "We offer fast delivery: " + strings.Join(Knowledge.Delivery, "; ") + ". Where would you like your pizza delivered?"
	case containsAny(msg, []string{"status", "track", "where", "tracking"}):
		return "We provide real-time order tracking, so you know exactly when your pizza will arrive. Would you like to place an order now?"
	case containsAny(msg, []string{"order", "buy", "purchase", "place order"}):
		return "Excellent choice! Select your pizzas, choose delivery options, and we'll get them to you fast. What would you like to order today?"
	case containsAny(msg, []string{"payment", "pay", "cash", "card", "credit"}):
		return "We accept: " + strings.Join(Knowledge.Payment, "; ") + ". Cash on delivery is our most popular option."
	case containsAny(msg, []string{"thank", "thanks", "appreciate"}):
		return "You're very welcome! Is there anything else I can help you with today?"
	case containsAny(msg, []string{"topping", "extra", "customize"}):
		return "We offer extra cheese, mushrooms, bell peppers, onions, olives, and more. Each topping is $1.99 extra. What would you like to add?"
	case containsAny(msg, []string{"deal", "offer", "special", "discount", "promotion"}):
		return "Free delivery on orders over $25, and 10% off when you order 2 or more pizzas! What would you like to order?"
	default:
		return "I'm here to help with your pizza delivery needs! You can ask me about our menu, prices, delivery options, toppings, or how to place an order."
	}
}
