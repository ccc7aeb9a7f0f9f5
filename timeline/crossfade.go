package timeline

import "time"

// SlideTarget names the media layer of a slide.
func SlideTarget(id string) string {
	return "slide:" + id
}

// ContentTarget names the text block (heading and call to action) of a slide.
func ContentTarget(id string) string {
	return "content:" + id
}

// CrossFade builds the slide handoff: the outgoing slide fades out while the
// incoming one fades in, and the text blocks swap with a short vertical
// slide. The incoming text starts slightly late so the two do not overlap.
func CrossFade(from, to string) Timeline {
	var tl Timeline

	tl.Add(
		Tween{
			Target: SlideTarget(from), Property: Opacity,
			From: 1, To: 0,
			Duration: 900 * time.Millisecond, Ease: Power2Out,
		},
		Tween{
			Target: SlideTarget(to), Property: Opacity,
			From: 0, To: 1,
			Duration: time.Second, Ease: Power2Out,
		},
		Tween{
			Target: ContentTarget(from), Property: Y,
			From: 0, To: -24,
			Duration: 500 * time.Millisecond, Ease: Power1In,
		},
		Tween{
			Target: ContentTarget(from), Property: Opacity,
			From: 1, To: 0,
			Duration: 500 * time.Millisecond, Ease: Power1In,
		},
		Tween{
			Target: ContentTarget(to), Property: Y,
			From: 18, To: 0,
			Start: 180 * time.Millisecond, Duration: 800 * time.Millisecond, Ease: Power2Out,
		},
		Tween{
			Target: ContentTarget(to), Property: Opacity,
			From: 0, To: 1,
			Start: 180 * time.Millisecond, Duration: 800 * time.Millisecond, Ease: Power2Out,
		},
	)

	return tl
}
