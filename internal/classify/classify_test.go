package classify

import "testing"

var testDict = Dictionary{
	Default: "E-commerce",
	Categories: []Category{
		{Name: "Marketing", Keywords: []string{"marketing", "seo", "advertising", "campaign", "branding"}},
		{Name: "E-commerce", Keywords: []string{"ecommerce", "e-commerce", "shop", "store", "checkout"}},
		{Name: "Logistics", Keywords: []string{"shipping", "fulfillment", "warehouse", "delivery", "inventory"}},
		{Name: "Finance", Keywords: []string{"payment", "pricing", "revenue", "invoice", "tax"}},
		{Name: "Technology", Keywords: []string{"software", "platform", "api", "automation", "integration"}},
	},
}

func TestClassifyPicksHighestCount(t *testing.T) {
	t.Parallel()

	got := Classify(
		"Warehouse automation",
		"Modern fulfillment centers rely on shipping data and warehouse robotics to speed up delivery.",
		testDict,
	)
	if got != "Logistics" {
		t.Fatalf("expected Logistics, got %s", got)
	}
}

func TestClassifyTieResolvesToFirstDeclared(t *testing.T) {
	t.Parallel()

	// One marketing keyword, one finance keyword: Marketing is declared first.
	got := Classify("SEO basics", "Understand pricing before you start.", testDict)
	if got != "Marketing" {
		t.Fatalf("expected Marketing on tie, got %s", got)
	}
}

func TestClassifyFallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := Classify("Gardening at home", "Growing tomatoes on a balcony.", testDict)
	if got != testDict.Default {
		t.Fatalf("expected default %s, got %s", testDict.Default, got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	t.Parallel()

	if got := Classify("MARKETING CAMPAIGN Playbook", "", testDict); got != "Marketing" {
		t.Fatalf("expected Marketing, got %s", got)
	}
}
