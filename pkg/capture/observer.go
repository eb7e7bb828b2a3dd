package capture

// Observer is notified of dispatcher outcomes. Implementations must be
// cheap and non-blocking; they run on the capture path.
type Observer interface {
	CaptureReceived(t PacketType)
	CaptureTruncated(t PacketType)
	ProbeReported(rssi int8)
}

type nopObserver struct{}

func (nopObserver) CaptureReceived(PacketType)  {}
func (nopObserver) CaptureTruncated(PacketType) {}
func (nopObserver) ProbeReported(int8)          {}
