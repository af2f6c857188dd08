package transport

import (
	"errors"
	"net"
	"testing"

	"github.com/fgeck/gowol/internal/netif"
	"github.com/mdlayher/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConn struct {
	writeToFunc func(b []byte, addr net.Addr) (int, error)
	closed      bool
}

func (m *mockConn) WriteTo(b []byte, addr net.Addr) (int, error) {
	if m.writeToFunc != nil {
		return m.writeToFunc(b, addr)
	}
	return len(b), nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

type mockWakeClient struct {
	wakeFunc func(addr string, target net.HardwareAddr, password []byte) error
	closed   bool
}

func (m *mockWakeClient) WakePassword(addr string, target net.HardwareAddr, password []byte) error {
	if m.wakeFunc != nil {
		return m.wakeFunc(addr, target, password)
	}
	return nil
}

func (m *mockWakeClient) Close() error {
	m.closed = true
	return nil
}

var testTarget = net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

func testFrame() []byte {
	frame := make([]byte, 116)
	copy(frame, testTarget)
	copy(frame[6:], []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66})
	frame[12], frame[13] = 0x08, 0x42
	return frame
}

func TestRawChannel_Send(t *testing.T) {
	var capturedFrame []byte
	var capturedAddr net.Addr
	conn := &mockConn{
		writeToFunc: func(b []byte, addr net.Addr) (int, error) {
			capturedFrame = b
			capturedAddr = addr
			return len(b), nil
		},
	}
	ch := newRawChannel(conn, netif.LinkEthernet)
	frame := testFrame()

	err := ch.Send(frame)

	require.NoError(t, err)
	assert.Equal(t, frame, capturedFrame)
	require.IsType(t, &packet.Addr{}, capturedAddr)
	assert.Equal(t, testTarget, capturedAddr.(*packet.Addr).HardwareAddr)
	assert.Equal(t, netif.LinkEthernet, ch.LinkType())
}

func TestRawChannel_SendError(t *testing.T) {
	conn := &mockConn{
		writeToFunc: func(b []byte, addr net.Addr) (int, error) {
			return 0, errors.New("network is down")
		},
	}

	err := newRawChannel(conn, netif.LinkEthernet).Send(testFrame())

	assert.ErrorIs(t, err, ErrSend)
	assert.Contains(t, err.Error(), "network is down")
}

func TestRawChannel_ShortWrite(t *testing.T) {
	conn := &mockConn{
		writeToFunc: func(b []byte, addr net.Addr) (int, error) {
			return len(b) - 4, nil
		},
	}

	err := newRawChannel(conn, netif.LinkEthernet).Send(testFrame())

	assert.ErrorIs(t, err, ErrSend)
	assert.Contains(t, err.Error(), "112 of 116")
}

func TestRawChannel_RejectsHeaderlessFrame(t *testing.T) {
	called := false
	conn := &mockConn{
		writeToFunc: func(b []byte, addr net.Addr) (int, error) {
			called = true
			return len(b), nil
		},
	}

	err := newRawChannel(conn, netif.LinkEthernet).Send([]byte{0x01, 0x02})

	assert.ErrorIs(t, err, ErrSend)
	assert.False(t, called)
}

func TestRawChannel_Close(t *testing.T) {
	conn := &mockConn{}

	require.NoError(t, newRawChannel(conn, netif.LinkEthernet).Close())
	assert.True(t, conn.closed)
}

func TestUDPSender_Send(t *testing.T) {
	var capturedAddr string
	var capturedTarget net.HardwareAddr
	var capturedPassword []byte
	client := &mockWakeClient{
		wakeFunc: func(addr string, target net.HardwareAddr, password []byte) error {
			capturedAddr = addr
			capturedTarget = target
			capturedPassword = password
			return nil
		},
	}
	sender := NewUDPSenderWithClient(func() (WakeClient, error) { return client, nil })

	err := sender.Send("192.168.1.255", testTarget, []byte{1, 2, 3, 4})

	require.NoError(t, err)
	assert.Equal(t, "192.168.1.255:9", capturedAddr)
	assert.Equal(t, testTarget, capturedTarget)
	assert.Equal(t, []byte{1, 2, 3, 4}, capturedPassword)
	assert.True(t, client.closed)
}

func TestUDPSender_ClientError(t *testing.T) {
	sender := NewUDPSenderWithClient(func() (WakeClient, error) {
		return nil, errors.New("socket: permission denied")
	})

	err := sender.Send("", testTarget, nil)

	assert.ErrorIs(t, err, ErrChannelOpen)
}

func TestUDPSender_SendError(t *testing.T) {
	client := &mockWakeClient{
		wakeFunc: func(addr string, target net.HardwareAddr, password []byte) error {
			return errors.New("no route to host")
		},
	}
	sender := NewUDPSenderWithClient(func() (WakeClient, error) { return client, nil })

	err := sender.Send("", testTarget, nil)

	assert.ErrorIs(t, err, ErrSend)
	assert.True(t, client.closed)
}

func TestUDPSender_InvalidAddress(t *testing.T) {
	called := false
	sender := NewUDPSenderWithClient(func() (WakeClient, error) {
		called = true
		return &mockWakeClient{}, nil
	})

	err := sender.Send("not-an-ip", testTarget, nil)

	assert.ErrorIs(t, err, ErrChannelOpen)
	assert.False(t, called)
}

func TestUDPAddress(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: "255.255.255.255:9"},
		{input: "192.168.1.255", want: "192.168.1.255:9"},
		{input: "192.168.1.255:7", want: "192.168.1.255:7"},
		{input: "ff02::1", want: "[ff02::1]:9"},
		{input: "[ff02::1]:7", want: "[ff02::1]:7"},
		{input: "broadcast.lan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := UDPAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
