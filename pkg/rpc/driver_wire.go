package rpc

import "google.golang.org/protobuf/encoding/protowire"

func (m *Location) appendWire(b []byte) []byte {
	b = appendDouble(b, 1, m.Latitude)
	return appendDouble(b, 2, m.Longitude)
}

func (m *Location) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readDouble(typ, b, &m.Latitude)
		case 2:
			return readDouble(typ, b, &m.Longitude)
		}
		return 0
	})
}

func (m *AssignDriverRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OrderID)
	if m.PickupLocation != nil {
		b = appendMessage(b, 2, m.PickupLocation)
	}
	return b
}

func (m *AssignDriverRequest) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.OrderID)
		case 2:
			if m.PickupLocation == nil {
				m.PickupLocation = new(Location)
			}
			return readMessage(typ, b, m.PickupLocation)
		}
		return 0
	})
}

func (m *AssignDriverResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.DriverID)
	b = appendString(b, 2, m.DriverName)
	b = appendString(b, 3, m.Vehicle)
	b = appendInt32(b, 4, m.EstimatedTimeMinutes)
	return appendString(b, 5, m.Status)
}

func (m *AssignDriverResponse) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.DriverID)
		case 2:
			return readString(typ, b, &m.DriverName)
		case 3:
			return readString(typ, b, &m.Vehicle)
		case 4:
			return readInt32(typ, b, &m.EstimatedTimeMinutes)
		case 5:
			return readString(typ, b, &m.Status)
		}
		return 0
	})
}

func (m *DriverStatusRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.DriverID)
}

func (m *DriverStatusRequest) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.DriverID)
		}
		return 0
	})
}

func (m *Driver) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.DriverID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Vehicle)
	b = appendString(b, 4, m.LicensePlate)
	if m.CurrentLocation != nil {
		b = appendMessage(b, 5, m.CurrentLocation)
	}
	return appendBool(b, 6, m.Available)
}

func (m *Driver) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.DriverID)
		case 2:
			return readString(typ, b, &m.Name)
		case 3:
			return readString(typ, b, &m.Vehicle)
		case 4:
			return readString(typ, b, &m.LicensePlate)
		case 5:
			if m.CurrentLocation == nil {
				m.CurrentLocation = new(Location)
			}
			return readMessage(typ, b, m.CurrentLocation)
		case 6:
			return readBool(typ, b, &m.Available)
		}
		return 0
	})
}

func (m *DriverStatusResponse) appendWire(b []byte) []byte {
	if m.Driver != nil {
		b = appendMessage(b, 1, m.Driver)
	}
	return b
}

func (m *DriverStatusResponse) consumeWire(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			if m.Driver == nil {
				m.Driver = new(Driver)
			}
			return readMessage(typ, b, m.Driver)
		}
		return 0
	})
}
