// Command panzoomvis opens a Gio window with a pannable, zoomable board.
package main

func main() {
	Execute()
}
