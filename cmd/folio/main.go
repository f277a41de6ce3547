// Command folio serves a portfolio site and prepares its images.
package main

func main() {
	Execute()
}
