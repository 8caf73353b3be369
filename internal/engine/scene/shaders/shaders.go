// Package shaders holds the GLSL sources of the scene renderers.
package shaders

// TerrainVertexShader transforms the terrain mesh; colors are per vertex.
const TerrainVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uLightViewProj;

out vec3 vColor;
out vec3 vNormal;
out vec3 vWorldPos;
out vec4 vLightPos;

void main() {
	vColor = aColor;
	vNormal = aNormal;
	vWorldPos = aPosition;
	vLightPos = uLightViewProj * vec4(aPosition, 1.0);
	gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

// TerrainFragmentShader applies Lambert diffuse plus ambient, a 3x3 PCF
// shadow lookup and a distance fog toward the clear color.
const TerrainFragmentShader = `
#version 410 core

in vec3 vColor;
in vec3 vNormal;
in vec3 vWorldPos;
in vec4 vLightPos;

uniform vec3 uLightDir;
uniform vec3 uDiffuse;
uniform float uAmbient;
uniform vec3 uEye;
uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

uniform sampler2DShadow uShadowMap;
uniform float uShadowStrength;

out vec4 FragColor;

float shadowFactor(float bias) {
	if (uShadowStrength <= 0.0) {
		return 1.0;
	}
	vec3 p = vLightPos.xyz / vLightPos.w * 0.5 + 0.5;
	if (p.z > 1.0) {
		return 1.0;
	}
	vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
	float sum = 0.0;
	for (int x = -1; x <= 1; x++) {
		for (int y = -1; y <= 1; y++) {
			sum += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z - bias));
		}
	}
	return mix(1.0, sum / 9.0, uShadowStrength);
}

void main() {
	vec3 n = normalize(vNormal);
	vec3 l = normalize(uLightDir);
	float lambert = max(dot(n, l), 0.0);
	float bias = max(0.002 * (1.0 - dot(n, l)), 0.0005);
	vec3 lit = vColor * (uAmbient + uDiffuse * lambert * shadowFactor(bias));

	float dist = length(vWorldPos - uEye);
	float fog = clamp((dist - uFogNear) / max(uFogFar - uFogNear, 0.001), 0.0, 1.0);
	FragColor = vec4(mix(lit, uFogColor, fog), 1.0);
}
`

// DepthVertexShader renders the terrain from the light for the shadow map.
const DepthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uLightViewProj;

void main() {
	gl_Position = uLightViewProj * vec4(aPosition, 1.0);
}
`

// DepthFragmentShader writes depth only.
const DepthFragmentShader = `
#version 410 core

void main() {
}
`

// LineVertexShader draws unlit line lists.
const LineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

// LineFragmentShader fills lines with a flat color.
const LineFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// PointVertexShader sizes points by distance to the eye.
const PointVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;
uniform vec3 uEye;
uniform float uPointSize;

void main() {
	gl_Position = uViewProj * vec4(aPosition, 1.0);
	float dist = max(length(aPosition - uEye), 1.0);
	gl_PointSize = clamp(uPointSize * 20.0 / dist, 1.0, uPointSize);
}
`

// PointFragmentShader draws soft round points.
const PointFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	vec2 c = gl_PointCoord * 2.0 - 1.0;
	float r2 = dot(c, c);
	if (r2 > 1.0) {
		discard;
	}
	FragColor = vec4(uColor.rgb, uColor.a * (1.0 - r2));
}
`

// BillboardVertexShader expands a unit quad, anchored at its bottom
// center, so it always faces the camera.
const BillboardVertexShader = `
#version 410 core

layout (location = 0) in vec2 aCorner;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uViewProj;
uniform vec3 uWorldPos;
uniform vec3 uCamRight;
uniform vec3 uCamUp;
uniform vec2 uSpriteSize;

out vec2 vTexCoord;

void main() {
	vec3 pos = uWorldPos + uCamRight * aCorner.x * uSpriteSize.x + uCamUp * aCorner.y * uSpriteSize.y;
	gl_Position = uViewProj * vec4(pos, 1.0);
	vTexCoord = aTexCoord;
}
`

// BillboardFragmentShader samples the label texture.
const BillboardFragmentShader = `
#version 410 core

uniform sampler2D uTexture;
uniform vec4 uTint;

in vec2 vTexCoord;
out vec4 FragColor;

void main() {
	vec4 c = texture(uTexture, vTexCoord) * uTint;
	if (c.a < 0.02) {
		discard;
	}
	FragColor = c;
}
`
