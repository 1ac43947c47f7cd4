package led

import "fmt"

// pwmDevice is the part of the libws2811 handle the PWM driver uses.
type pwmDevice interface {
	Init() error
	Fini()
	Leds(channel int) []uint32
	Render() error
	Wait() error
}

// startPWM initialises dev and finalises it again when that fails, so a
// failed open leaves no DMA channel or mmap behind.
func startPWM(dev pwmDevice) error {
	if err := dev.Init(); err != nil {
		dev.Fini()
		return fmt.Errorf("ws2811 init: %w", err)
	}
	return nil
}

// writePWM packs an RGB frame into channel 0 and blocks until it is out.
func writePWM(dev pwmDevice, frame []byte, count int) error {
	if err := checkLen(frame, count); err != nil {
		return err
	}
	leds := dev.Leds(0)
	for i := 0; i < count && i < len(leds); i++ {
		r := uint32(frame[i*3+0])
		g := uint32(frame[i*3+1])
		b := uint32(frame[i*3+2])
		leds[i] = r<<16 | g<<8 | b
	}
	if err := dev.Render(); err != nil {
		return fmt.Errorf("ws2811 render: %w", err)
	}
	return dev.Wait()
}
