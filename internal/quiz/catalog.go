package quiz

import (
	"fmt"
	"sync"
)

// Catalog is an ordered, ID-indexed set of quizzes. It is safe for
// concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*Quiz
}

// NewCatalog creates a catalog holding quizzes. It fails on the first
// invalid or duplicate quiz.
func NewCatalog(quizzes ...Quiz) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Quiz)}
	for _, q := range quizzes {
		if err := c.Add(q); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates q and appends it.
func (c *Catalog) Add(q Quiz) error {
	if err := q.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[q.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateQuiz, q.ID)
	}
	stored := q
	stored.Questions = append([]Question(nil), q.Questions...)
	c.byID[q.ID] = &stored
	c.order = append(c.order, q.ID)
	return nil
}

// Get returns the quiz with the given ID.
func (c *Catalog) Get(id string) (*Quiz, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuiz, id)
	}
	return q, nil
}

// All returns every quiz in insertion order.
func (c *Catalog) All() []*Quiz {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Quiz, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of quizzes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// LoadCatalog returns the built-in catalog extended with every bank file
// in dir. An empty dir yields the built-in catalog alone.
func LoadCatalog(dir string) (*Catalog, error) {
	c := DefaultCatalog()
	if dir == "" {
		return c, nil
	}
	quizzes, err := LoadBankDir(dir)
	if err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		if err := c.Add(q); err != nil {
			return nil, fmt.Errorf("bank %s: %w", dir, err)
		}
	}
	return c, nil
}

// DefaultCatalog returns the built-in mock exams.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(builtinQuizzes()...)
	if err != nil {
		panic(fmt.Sprintf("built-in quiz catalog is invalid: %v", err))
	}
	return c
}

func builtinQuizzes() []Quiz {
	return []Quiz{
		{
			ID:       "algebra-midterm",
			Title:    "Algebra Mid-Term",
			Subject:  "Mathematics",
			Duration: "15 min",
			Questions: []Question{
				{
					Prompt:  "Solve for x: 2x + 3 = 11",
					Options: []string{"x = 3", "x = 4", "x = 5", "x = 7"},
					Correct: 1,
					Topic:   "Linear Equations",
				},
				{
					Prompt:  "What are the roots of x^2 - 5x + 6 = 0?",
					Options: []string{"x = 1 and x = 6", "x = -2 and x = -3", "x = 2 and x = 3", "x = -1 and x = 6"},
					Correct: 2,
					Topic:   "Quadratic Equations",
				},
				{
					Prompt:  "If f(x) = 3x - 2, what is f(4)?",
					Options: []string{"12", "14", "10", "8"},
					Correct: 2,
					Topic:   "Functions",
				},
			},
		},
		{
			ID:       "physics-mechanics",
			Title:    "Physics: Mechanics Quiz",
			Subject:  "Physics",
			Duration: "20 min",
			Questions: []Question{
				{
					Prompt:  "A net force of 10 N acts on a 2 kg mass. What is its acceleration?",
					Options: []string{"20 m/s^2", "5 m/s^2", "12 m/s^2", "0.2 m/s^2"},
					Correct: 1,
					Topic:   "Newton's Laws",
				},
				{
					Prompt:  "Which quantity is a vector?",
					Options: []string{"Speed", "Mass", "Displacement", "Energy"},
					Correct: 2,
					Topic:   "Kinematics",
				},
				{
					Prompt:  "A car travels 120 km in 2 hours. What is its average speed?",
					Options: []string{"60 km/h", "240 km/h", "30 km/h", "122 km/h"},
					Correct: 0,
					Topic:   "Kinematics",
				},
				{
					Prompt:  "What is the kinetic energy of a 4 kg ball moving at 3 m/s?",
					Options: []string{"12 J", "6 J", "36 J", "18 J"},
					Correct: 3,
					Topic:   "Work and Energy",
				},
			},
		},
		{
			ID:       "cs-data-structures",
			Title:    "Computer Science: Data Structures",
			Subject:  "Computer Science",
			Duration: "20 min",
			Questions: []Question{
				{
					Prompt:  "Which structure serves elements in last-in, first-out order?",
					Options: []string{"Queue", "Stack", "Heap", "Linked list"},
					Correct: 1,
					Topic:   "Linear Structures",
				},
				{
					Prompt:  "What is the average lookup cost in a hash table?",
					Options: []string{"O(n)", "O(log n)", "O(1)", "O(n log n)"},
					Correct: 2,
					Topic:   "Hashing",
				},
				{
					Prompt:  "How many edges does a tree with 10 nodes have?",
					Options: []string{"10", "11", "9", "20"},
					Correct: 2,
					Topic:   "Trees",
				},
				{
					Prompt:  "Which traversal of a binary search tree yields sorted keys?",
					Options: []string{"Pre-order", "In-order", "Post-order", "Level-order"},
					Correct: 1,
					Topic:   "Trees",
				},
			},
		},
	}
}
