// Command zkhash evaluates the permutations of the zkhash module from the
// command line.
package main

func main() {
	Execute()
}
