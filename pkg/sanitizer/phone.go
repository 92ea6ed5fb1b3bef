package sanitizer

var phonePipeline = Pipeline{
	RemoveWhitespace,
	TrimLeadingZeros,
}

// NormalizePhone strips whitespace and then any leading zeros. The result may
// be empty when the input held nothing else.
func NormalizePhone(phone string) string {
	return phonePipeline.Apply(phone)
}
