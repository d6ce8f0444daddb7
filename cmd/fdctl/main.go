// Command fdctl is a developer inspector for the track engine: it
// opens an image file directly (no USB adapter, no serial port) and
// drives the same image.Image/TrackState vtable the engine uses, so a
// developer can probe geometry, dump flux, and decode sectors without
// real hardware attached.
package main

func main() {
	Execute()
}
