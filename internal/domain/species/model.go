package species

// Species agrupa animales. El nombre es único.
type Species struct {
	ID   int64
	Name string
}

const MaxNameLength = 32
