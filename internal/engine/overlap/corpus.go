package overlap

// referenceCorpus is the fixed set of reference passages the matcher compares
// against. It is a process-wide constant list, never mutated or persisted.
var referenceCorpus = []string{
	"Artificial intelligence is transforming the way people work, learn, and communicate across nearly every industry.",
	"Machine learning models are trained on large datasets to recognize patterns and make predictions about new data.",
	"Climate change is one of the most pressing challenges facing humanity, requiring coordinated global action to reduce emissions.",
	"The internet has fundamentally changed how information is created, shared, and consumed around the world.",
	"Regular exercise and a balanced diet are widely recognized as the foundation of a healthy lifestyle.",
	"Renewable energy sources such as solar and wind power are becoming increasingly cost competitive with fossil fuels.",
	"Effective communication skills are essential for success in both personal relationships and professional environments.",
	"The scientific method relies on observation, hypothesis formation, experimentation, and careful analysis of results.",
}
