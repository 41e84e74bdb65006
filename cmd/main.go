package main

// main is the program entry point. It delegates initialization and
// execution to Execute, which sets up the Cobra CLI command structure
// (defined in root.go) and runs the selected pass.
func main() {
	Execute()
}
