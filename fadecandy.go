package hatlights

// This file contains the strip driver for LEDs attached to fadecandy boards.
// Frames are sent as Open Pixel Control messages to an fcserver, frames
// identical to the last one sent, including brightness, are skipped as the
// fadecandy keeps showing what it last received

import (
	"github.com/cnf/structhash"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/kellydunn/go-opc"

	"github.com/TeamNorCal/hatlights/model"
)

// opcConn is the part of the OPC client used by the strip
type opcConn interface {
	Connect(protocol string, host string) error
	Send(m *opc.Message) error
}

// opcFrame is the content hashed for change detection
type opcFrame struct {
	Channel uint8
	Pixels  []model.Color
}

type OPCStrip struct {
	*PixelBuffer

	server    string
	channel   uint8
	client    opcConn
	connected bool
	last      []byte
}

// NewOPCStrip connects to the fcserver at server, host:port, and drives
// length pixels on the given OPC channel
func NewOPCStrip(server string, channel uint8, length int) (strip *OPCStrip, err errors.Error) {
	strip = newOPCStrip(opc.NewClient(), server, channel, length)
	if errGo := strip.connect(); errGo != nil {
		return nil, errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime())
	}
	return strip, nil
}

func newOPCStrip(client opcConn, server string, channel uint8, length int) (strip *OPCStrip) {
	return &OPCStrip{
		PixelBuffer: NewPixelBuffer(length),
		server:      server,
		channel:     channel,
		client:      client,
		last:        []byte{},
	}
}

func (strip *OPCStrip) connect() (errGo error) {
	if errGo = strip.client.Connect("tcp", strip.server); errGo != nil {
		return errGo
	}
	strip.connected = true
	return nil
}

// Show sends the buffered frame.  After a failed send the connection is
// re-established on the next call
func (strip *OPCStrip) Show() (err error) {
	frame := &opcFrame{
		Channel: strip.channel,
		Pixels:  strip.Frame(),
	}

	hash := structhash.Md5(frame, 1)
	if string(hash) == string(strip.last) {
		return nil
	}

	if !strip.connected {
		if errGo := strip.connect(); errGo != nil {
			return errors.Wrap(errGo).With("url", strip.server).With("stack", stack.Trace().TrimRuntime())
		}
	}

	m := opc.NewMessage(strip.channel)
	m.SetLength(uint16(len(frame.Pixels) * 3))
	for i, c := range frame.Pixels {
		r, g, b := c.Decompose()
		m.SetPixelColor(i, uint8(r), uint8(g), uint8(b))
	}

	if errGo := strip.client.Send(m); errGo != nil {
		strip.connected = false
		strip.last = []byte{}
		return errors.Wrap(errGo).With("url", strip.server).With("stack", stack.Trace().TrimRuntime())
	}
	strip.last = hash
	return nil
}
