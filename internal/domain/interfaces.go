package domain

// Material is one row of the reference table: a name plus its numeric attributes.
type Material struct {
	Name       string
	Attributes map[string]float64
}

// Dataset is the reference table. Schema holds the attribute names in column
// order and never contains NameColumn. It is not mutated after load.
type Dataset struct {
	NameColumn string
	Schema     []string
	Materials  []Material
}

// Vector returns the attributes of the i-th material in schema order.
func (d *Dataset) Vector(i int) []float64 {
	vec := make([]float64, len(d.Schema))
	for j, col := range d.Schema {
		vec[j] = d.Materials[i].Attributes[col]
	}
	return vec
}

// Len returns the number of materials.
func (d *Dataset) Len() int { return len(d.Materials) }

// Query is a partial attribute record built from user input.
type Query map[string]float64

// Match is a material name paired with its similarity percentage.
type Match struct {
	Name       string
	Similarity float64
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single exchange in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Conversation is an append-only list of messages.
type Conversation struct {
	ID       string
	Title    string
	Messages []Message
}

