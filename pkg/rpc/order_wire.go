package rpc

import "google.golang.org/protobuf/encoding/protowire"

func (m *OrderRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.UserID)
	b = appendString(b, 2, m.RestaurantID)
	return appendStrings(b, 3, m.Items)
}

func (m *OrderRequest) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.UserID)
		case 2:
			return readString(typ, b, &m.RestaurantID)
		case 3:
			return readStrings(typ, b, &m.Items)
		}
		return 0
	})
}

func (m *OrderResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OrderID)
	return appendString(b, 2, m.Status)
}

func (m *OrderResponse) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.OrderID)
		case 2:
			return readString(typ, b, &m.Status)
		}
		return 0
	})
}
