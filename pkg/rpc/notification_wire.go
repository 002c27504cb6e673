package rpc

import "google.golang.org/protobuf/encoding/protowire"

func (m *NotificationMessage) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OrderID)
	b = appendString(b, 2, m.Status)
	b = appendString(b, 3, m.Title)
	b = appendString(b, 4, m.Body)
	return appendInt64(b, 5, m.Timestamp)
}

func (m *NotificationMessage) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.OrderID)
		case 2:
			return readString(typ, b, &m.Status)
		case 3:
			return readString(typ, b, &m.Title)
		case 4:
			return readString(typ, b, &m.Body)
		case 5:
			return readInt64(typ, b, &m.Timestamp)
		}
		return 0
	})
}

func (m *SubscribeRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.UserID)
	return appendString(b, 2, m.OrderID)
}

func (m *SubscribeRequest) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.UserID)
		case 2:
			return readString(typ, b, &m.OrderID)
		}
		return 0
	})
}

func (m *OrderUpdate) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OrderID)
	b = appendString(b, 2, m.Status)
	b = appendString(b, 3, m.Message)
	return appendInt64(b, 4, m.Timestamp)
}

func (m *OrderUpdate) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.OrderID)
		case 2:
			return readString(typ, b, &m.Status)
		case 3:
			return readString(typ, b, &m.Message)
		case 4:
			return readInt64(typ, b, &m.Timestamp)
		}
		return 0
	})
}
