package langdetect

import (
	"testing"
)

func BenchmarkDetectJavaScript(b *testing.B) {
	code := []byte(`function greet(name) {
  var message = "Hello, " + name;
  return message;
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectJSON(b *testing.B) {
	code := []byte(`{
  "name": "test",
  "version": "1.0.0"
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectClassifier(b *testing.B) {
	code := []byte("hello world, nothing to see")
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkFromInfoString(b *testing.B) {
	for range b.N {
		FromInfoString("javascript title=app.js")
	}
}
