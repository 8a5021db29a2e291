package renderer

import "fmt"

// Uniform names shared by the Go side and the GLSL below.
const (
	UniformViewPortResolution = "viewPortResolution"
	UniformAccentColor        = "accentColor"
	UniformZoom               = "zoom"
	UniformCenterOffset       = "centerOffset"
	UniformRotationMat        = "rotationMat"
	UniformIterations         = "iterations"
	UniformRayOrigin          = "rayOrigin"
	UniformCameraRotationMat  = "cameraRotationMat"
)

// MandelbrotVertexShader passes clip-space positions through.
const MandelbrotVertexShader = `
#version 410 core
layout(location = 0) in vec2 inPosition;
void main() {
    gl_Position = vec4(inPosition, 0.0, 1.0);
}
` + "\x00"

// MandelbrotFragmentShader maps each pixel to the complex plane with
//
//	c = rotationMat * (uv / zoom) + centerOffset
//
// where uv is the pixel offset from the viewport centre divided by the
// smaller viewport dimension (pixels per unit).
const MandelbrotFragmentShader = `
#version 410 core
out vec4 outColor;

uniform vec2  viewPortResolution;
uniform vec3  accentColor;
uniform float zoom;
uniform vec2  centerOffset;
uniform mat2  rotationMat;

const int maxIterations = 1000;

void main() {
    float pixelsPerUnit = min(viewPortResolution.x, viewPortResolution.y);
    vec2 uv = (gl_FragCoord.xy - 0.5 * viewPortResolution) / pixelsPerUnit;
    vec2 c  = rotationMat * (uv / zoom) + centerOffset;

    vec2 z = vec2(0.0);
    int i = 0;
    for (; i < maxIterations; i++) {
        z = vec2(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
        if (dot(z, z) > 16.0) break;
    }
    if (i == maxIterations) {
        outColor = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    // smooth iteration count
    float nu = float(i) + 1.0 - log2(log2(dot(z, z)) * 0.5);
    float t  = fract(nu / 64.0);
    vec3 band = 0.5 + 0.5 * cos(6.28318 * (t + vec3(0.0, 0.33, 0.67)));
    outColor = vec4(mix(band, accentColor, 0.5 * (1.0 - t)), 1.0);
}
` + "\x00"

// UVVertexShader passes positions through and forwards uv coordinates.
const UVVertexShader = `
#version 410 core
layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec2 inUV;
out vec2 fragUV;
void main() {
    gl_Position = vec4(inPosition, 0.0, 1.0);
    fragUV      = inUV;
}
` + "\x00"

// mengerPrisonFragmentTemplate is completed by MengerPrisonFragmentShader with
// the distance function constants, so the GPU and the host collision check
// evaluate the same field.
const mengerPrisonFragmentTemplate = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform int  iterations;
uniform vec2 viewPortResolution;
uniform vec3 rayOrigin;
uniform mat3 cameraRotationMat;

const float boxDimen     = %.8f;
const float halfBoxDimen = boxDimen * 0.5;
const float hitDist      = %.8f;
const int   maxIterations = %d;
const int   maxSteps     = 160;
const float maxDist      = 160.0;

float sdRect(vec2 pos, vec2 dimen) {
    vec2  rayToCorner = abs(pos) - dimen;
    float maxDelta    = min(max(rayToCorner.x, rayToCorner.y), 0.0);
    return length(max(rayToCorner, vec2(0.0))) + maxDelta;
}

float sdCross(vec3 pos, vec3 dimen) {
    float distA = sdRect(pos.xy, dimen.xy);
    float distB = sdRect(pos.xz, dimen.xz);
    float distC = sdRect(pos.yz, dimen.yz);
    return min(distA, min(distB, distC));
}

float sdMengerPrison(vec3 pos) {
    vec3 prisonRay = mod(pos, boxDimen * 2.0) - vec3(boxDimen);
    float mengerPrisonDist = sdCross(prisonRay, vec3(halfBoxDimen));
    if (mengerPrisonDist > hitDist) return mengerPrisonDist;

    float scale = 1.0;
    for (int i = 0; i < maxIterations; i++) {
        if (i >= iterations) break;
        float boxedWorldDimen = boxDimen / scale;
        vec3  posShift = vec3(boxedWorldDimen * 0.5);
        vec3  ray = mod(pos + posShift, boxedWorldDimen) - posShift;
        ray *= scale;
        float crossesDist = sdCross(ray * 3.0, vec3(halfBoxDimen));
        scale *= 3.0;
        crossesDist /= scale;
        mengerPrisonDist = max(mengerPrisonDist, -crossesDist);
    }
    return mengerPrisonDist;
}

void main() {
    vec2 uv = fragUV * 2.0 - 1.0;
    uv.x *= viewPortResolution.x / viewPortResolution.y;
    vec3 rayDir = normalize(cameraRotationMat * vec3(uv, 1.5));

    float dist = 0.0;
    int   step = 0;
    bool  hit  = false;
    for (; step < maxSteps; step++) {
        float d = sdMengerPrison(rayOrigin + rayDir * dist);
        if (d < hitDist) {
            hit = true;
            break;
        }
        dist += d;
        if (dist > maxDist) break;
    }

    if (!hit) {
        outColor = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }
    float occlusion = 1.0 - float(step) / float(maxSteps);
    float fog       = exp(-dist * 0.03);
    vec3  base      = mix(vec3(0.25, 0.05, 0.05), vec3(1.0, 0.85, 0.7), occlusion);
    outColor = vec4(base * occlusion * fog, 1.0);
}
`

// MengerPrisonFragmentShader returns the raymarching fragment shader for a
// prison with the given distance function constants.
func MengerPrisonFragmentShader(boxDimen, hitDist float32, maxIterations int) string {
	return fmt.Sprintf(mengerPrisonFragmentTemplate, boxDimen, hitDist, maxIterations) + "\x00"
}
