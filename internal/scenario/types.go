// Package scenario defines the scripted training days and loads them from
// JSON or YAML files.
package scenario

import "fmt"

// StageKind is the gameplay variant of a stage.
type StageKind string

const (
	KindCounter   StageKind = "counter"   // Taking orders at the register
	KindKitchen   StageKind = "kitchen"   // Assembling items
	KindCleaning  StageKind = "cleaning"  // Cleaning and restocking
	KindComplaint StageKind = "complaint" // Handling an unhappy customer
	KindMixed     StageKind = "mixed"     // Counter and kitchen together
)

// Valid reports whether k is a known stage kind.
func (k StageKind) Valid() bool {
	switch k {
	case KindCounter, KindKitchen, KindCleaning, KindComplaint, KindMixed:
		return true
	}
	return false
}

// CustomerMood affects how the customer reacts to service.
type CustomerMood string

const (
	MoodFriendly CustomerMood = "friendly"
	MoodNeutral  CustomerMood = "neutral"
	MoodHurried  CustomerMood = "hurried"
	MoodCareful  CustomerMood = "careful" // Expects every required option to be confirmed
	MoodAngry    CustomerMood = "angry"
)

// Scenario is one playable day. It is immutable once loaded.
type Scenario struct {
	ID            string   `json:"id" yaml:"id"`
	FormatVersion string   `json:"format_version,omitempty" yaml:"format_version,omitempty"`
	DayNumber     int      `json:"day_number" yaml:"day_number"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	LearningGoals []string `json:"learning_goals" yaml:"learning_goals"`
	RequiredScore int      `json:"required_score" yaml:"required_score"`
	Stages        []Stage  `json:"stages" yaml:"stages"`
	UnlockTips    []string `json:"unlock_tips" yaml:"unlock_tips"`
}

// TotalOrders returns the number of orders across all stages.
func (s Scenario) TotalOrders() int {
	n := 0
	for _, st := range s.Stages {
		n += len(st.Orders)
	}
	return n
}

// TotalTime returns the sum of all stage time budgets in seconds.
func (s Scenario) TotalTime() int {
	n := 0
	for _, st := range s.Stages {
		n += st.TimeLimitSeconds
	}
	return n
}

// Stage is a timed block of orders of one gameplay kind.
type Stage struct {
	ID                    string    `json:"id" yaml:"id"`
	Kind                  StageKind `json:"type" yaml:"type"`
	Title                 string    `json:"title" yaml:"title"`
	TimeLimitSeconds      int       `json:"time_limit_seconds" yaml:"time_limit_seconds"`
	MaxSimultaneousOrders int       `json:"max_simultaneous_orders,omitempty" yaml:"max_simultaneous_orders,omitempty"`
	Orders                []Order   `json:"orders" yaml:"orders"`
}

// Order is a single customer's request.
type Order struct {
	ID              string       `json:"id" yaml:"id"`
	CustomerName    string       `json:"customer_name" yaml:"customer_name"`
	CustomerMood    CustomerMood `json:"customer_mood" yaml:"customer_mood"`
	RequestText     string       `json:"request_text" yaml:"request_text"`
	Items           []OrderItem  `json:"items" yaml:"items"`
	CorrectResponse string       `json:"correct_response" yaml:"correct_response"`
	PaymentAmount   int          `json:"payment_amount" yaml:"payment_amount"`
}

// MenuIDs returns the menu IDs of every item in the order.
func (o Order) MenuIDs() []string {
	ids := make([]string, len(o.Items))
	for i, it := range o.Items {
		ids[i] = it.MenuID
	}
	return ids
}

// ExpectedSteps returns the assembly steps of all items, in order.
func (o Order) ExpectedSteps() []string {
	var steps []string
	for _, it := range o.Items {
		steps = append(steps, it.ExpectedSteps...)
	}
	return steps
}

// RequiredOptions returns the keys of options that must be applied.
func (o Order) RequiredOptions() []string {
	var keys []string
	for _, it := range o.Items {
		for _, opt := range it.Options {
			if opt.IsRequired {
				keys = append(keys, opt.Key)
			}
		}
	}
	return keys
}

// OrderItem is one menu item within an order.
type OrderItem struct {
	MenuID        string        `json:"menu_id" yaml:"menu_id"`
	MenuName      string        `json:"menu_name" yaml:"menu_name"`
	IsSetMenu     bool          `json:"is_set_menu" yaml:"is_set_menu"`
	Options       []OrderOption `json:"options,omitempty" yaml:"options,omitempty"`
	ExpectedSteps []string      `json:"expected_steps,omitempty" yaml:"expected_steps,omitempty"`
}

// OrderOption is a customization such as "no lettuce".
type OrderOption struct {
	Key        string `json:"key" yaml:"key"`
	Label      string `json:"label" yaml:"label"`
	IsRequired bool   `json:"is_required" yaml:"is_required"`
}

// Tip is a reward card revealed when a day is passed.
type Tip struct {
	ID              string `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Body            string `json:"body" yaml:"body"`
	Category        string `json:"category" yaml:"category"`
	UnlockCondition string `json:"unlock_condition" yaml:"unlock_condition"`
	Author          string `json:"author" yaml:"author"`
}

// MenuCategory groups menu items.
type MenuCategory string

const (
	CategoryBurger  MenuCategory = "burger"
	CategorySide    MenuCategory = "side"
	CategoryDrink   MenuCategory = "drink"
	CategoryDessert MenuCategory = "dessert"
)

// MenuItem is a catalog entry.
type MenuItem struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Category    MenuCategory `json:"category" yaml:"category"`
	Price       int          `json:"price" yaml:"price"`
	Description string       `json:"description" yaml:"description"`
}

// DayID returns the identifier used for the given day number.
func DayID(dayNumber int) string {
	return fmt.Sprintf("day%d", dayNumber)
}
