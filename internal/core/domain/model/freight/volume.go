package freight

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrVolumeIsNotConstructed is returned when a Volume was not created via NewVolume.
var ErrVolumeIsNotConstructed = errors.New("Volume must be created via NewVolume constructor")

// Volume is the consolidated physical package description submitted to the
// carrier for one reservation: dimensions in centimeters, weight in kilograms
// and the declared insured value.
type Volume struct { //nolint:recvcheck //using for validation
	weightKg     float64
	heightCm     float64
	widthCm      float64
	lengthCm     float64
	insuredValue kernel.Money

	guard guard.ConstructorGuard
}

// NewVolume creates a validated Volume. All physical measures must be
// strictly positive; floors and defaults are the volume calculator's concern.
func NewVolume(weightKg, heightCm, widthCm, lengthCm float64, insuredValue kernel.Money) (Volume, error) {
	volume := Volume{
		insuredValue: insuredValue,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		volume.setMeasure("weightKg", weightKg, &volume.weightKg),
		volume.setMeasure("heightCm", heightCm, &volume.heightCm),
		volume.setMeasure("widthCm", widthCm, &volume.widthCm),
		volume.setMeasure("lengthCm", lengthCm, &volume.lengthCm),
	); err != nil {
		return Volume{}, err
	}

	return volume, nil
}

// Validate ensures the Volume was created through NewVolume.
func (v Volume) Validate() error {
	return v.guard.Validate(ErrVolumeIsNotConstructed)
}

// WeightKg returns the consolidated weight in kilograms.
func (v Volume) WeightKg() float64 {
	return v.weightKg
}

// HeightCm returns the package height in centimeters.
func (v Volume) HeightCm() float64 {
	return v.heightCm
}

// WidthCm returns the package width in centimeters.
func (v Volume) WidthCm() float64 {
	return v.widthCm
}

// LengthCm returns the package length in centimeters.
func (v Volume) LengthCm() float64 {
	return v.lengthCm
}

// InsuredValue returns the declared value for carrier insurance.
func (v Volume) InsuredValue() kernel.Money {
	return v.insuredValue
}

func (v *Volume) setMeasure(name string, value float64, target *float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%v is not greater than 0", value))
	}
	*target = value
	return nil
}
