package rpc

import "google.golang.org/protobuf/encoding/protowire"

func (m *PaymentRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OrderID)
	b = appendString(b, 2, m.UserID)
	b = appendDouble(b, 3, m.Amount)
	return appendString(b, 4, m.PaymentMethod)
}

func (m *PaymentRequest) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.OrderID)
		case 2:
			return readString(typ, b, &m.UserID)
		case 3:
			return readDouble(typ, b, &m.Amount)
		case 4:
			return readString(typ, b, &m.PaymentMethod)
		}
		return 0
	})
}

func (m *PaymentResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.PaymentID)
	b = appendString(b, 2, m.Status)
	return appendString(b, 3, m.Message)
}

func (m *PaymentResponse) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.PaymentID)
		case 2:
			return readString(typ, b, &m.Status)
		case 3:
			return readString(typ, b, &m.Message)
		}
		return 0
	})
}
